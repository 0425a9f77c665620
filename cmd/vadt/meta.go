package main

import (
	"flag"
	"fmt"

	"github.com/mjtiv/VADT/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
)

func metaUsage(metaFlags *flag.FlagSet) {
	fmt.Print(
		"meta - combine the sample p-values of each testable variant with Fisher's method\n" +
			"\tCombined p-values are BH corrected across variants\n\n" +
			"Usage:\n" +
			"  vadt meta [options] -i " + pipeline.TestableFile + " -o outputDir\n\n" +
			"Options:\n")
	metaFlags.PrintDefaults()
}

func runMeta(args []string) {
	var err error
	metaFlags := flag.NewFlagSet("meta", flag.ExitOnError)
	s := addSettingFlags(metaFlags, "Testable dataset written by 'vadt filter'.")

	err = metaFlags.Parse(args)
	exception.PanicOnErr(err)
	metaFlags.Usage = func() { metaUsage(metaFlags) }

	cfg := s.settings(metaFlags)
	d, err := pipeline.Load(cfg.Input)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if err = pipeline.Meta(cfg, d); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
