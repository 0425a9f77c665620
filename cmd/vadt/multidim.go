package main

import (
	"flag"
	"fmt"

	"github.com/mjtiv/VADT/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
)

func multiDimUsage(multiDimFlags *flag.FlagSet) {
	fmt.Print(
		"multidim - multi-dimensional p-value adjustment of the samples of each testable variant\n" +
			"\tPools the smallest sample p-value of each variant, BH corrects the pooled values\n" +
			"\tand flags samples against a per-variant threshold\n\n" +
			"Usage:\n" +
			"  vadt multidim [options] -i " + pipeline.TestableFile + " -o outputDir\n\n" +
			"Options:\n")
	multiDimFlags.PrintDefaults()
}

func runMultiDim(args []string) {
	var err error
	multiDimFlags := flag.NewFlagSet("multidim", flag.ExitOnError)
	s := addSettingFlags(multiDimFlags, "Testable dataset written by 'vadt filter'.")

	err = multiDimFlags.Parse(args)
	exception.PanicOnErr(err)
	multiDimFlags.Usage = func() { multiDimUsage(multiDimFlags) }

	cfg := s.settings(multiDimFlags)
	d, err := pipeline.Load(cfg.Input)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if err = pipeline.MultiDim(cfg, d); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
