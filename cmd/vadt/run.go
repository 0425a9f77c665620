package main

import (
	"flag"
	"fmt"

	"github.com/mjtiv/VADT/pipeline"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
)

func runUsage(runFlags *flag.FlagSet) {
	fmt.Print(
		"run - filter variants, then run the multi-dimensional adjustment and the meta-analysis\n\n" +
			"Usage:\n" +
			"  vadt run [options] -i input.vcf -o outputDir\n" +
			"  vadt run -config VADT_Parameter_File.txt\n\n" +
			"Options:\n")
	runFlags.PrintDefaults()
}

func runAll(args []string) {
	var err error
	runFlags := flag.NewFlagSet("run", flag.ExitOnError)
	s := addSettingFlags(runFlags, "Input tab separated variant file with GT:AD sample columns.")
	cpuprofile := runFlags.Bool("cpuprofile", false, "write cpu profile")
	memprofile := runFlags.Bool("memprofile", false, "write memory profile")

	err = runFlags.Parse(args)
	exception.PanicOnErr(err)
	runFlags.Usage = func() { runUsage(runFlags) }

	if *memprofile && *cpuprofile {
		log.Fatal("ERROR: -memprofile and -cpuprofile are mutually exclusive.")
	}
	if *memprofile {
		defer profile.Start(profile.MemProfile).Stop()
	}
	if *cpuprofile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	cfg := s.settings(runFlags)
	if err = pipeline.Run(cfg); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
