package main

import (
	"flag"
	"fmt"

	"github.com/mjtiv/VADT/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
)

func filterUsage(filterFlags *flag.FlagSet) {
	fmt.Print(
		"filter - remove variants unsuitable for allele specific expression testing and label each sample\n" +
			"\tWrites the testable dataset, failure logs and indel exclusion zones to " + pipeline.FilterDir + "\n\n" +
			"Usage:\n" +
			"  vadt filter [options] -i input.vcf -o outputDir\n\n" +
			"Options:\n")
	filterFlags.PrintDefaults()
}

func runFilter(args []string) {
	var err error
	filterFlags := flag.NewFlagSet("filter", flag.ExitOnError)
	s := addSettingFlags(filterFlags, "Input tab separated variant file with GT:AD sample columns.")

	err = filterFlags.Parse(args)
	exception.PanicOnErr(err)
	filterFlags.Usage = func() { filterUsage(filterFlags) }

	cfg := s.settings(filterFlags)
	if _, err = pipeline.Filter(cfg); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}
