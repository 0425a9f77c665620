package main

import (
	"flag"

	"github.com/mjtiv/VADT/config"
	log "github.com/sirupsen/logrus"
)

// settingFlags are the configuration flags shared by every subcommand.
// A flag only overrides the configuration when it is given explicitly.
type settingFlags struct {
	config     *string
	input      *string
	output     *string
	quality    *float64
	indel      *int
	minReads   *int
	binomialP  *float64
	multiDim   *float64
	metaBH     *float64
	metaSample *float64
	plot       *bool
	verbose    *int
}

func addSettingFlags(fs *flag.FlagSet, inputHelp string) *settingFlags {
	d := config.Default()
	return &settingFlags{
		config:     fs.String("config", "", "YAML (.yaml, .yml) or legacy --Key value parameter file. Values from VADT_ environment variables and flags take precedence."),
		input:      fs.String("i", "", inputHelp),
		output:     fs.String("o", d.OutputDir, "Output directory. Result directories are created inside it."),
		quality:    fs.Float64("minQual", d.QualityScoreMin, "Minimum variant quality score."),
		indel:      fs.Int("indelRegion", d.IndelExclusionRegionLength, "Half width of the exclusion zone around each indel."),
		minReads:   fs.Int("minReads", d.MinTotalReadCount, "Minimum total read count for a sample to be tested."),
		binomialP:  fs.Float64("binomialP", d.BinomialProbability, "Null probability of the alternate allele in the binomial test."),
		multiDim:   fs.Float64("multiDimCutoff", d.MultiDimAdjustPValueCutoff, "Cutoff for the BH corrected pooled p-values of the multi-dimensional adjustment."),
		metaBH:     fs.Float64("metaCutoff", d.MetaBHAdjPValueCutoff, "Cutoff for the BH corrected meta-analysis p-values."),
		metaSample: fs.Float64("metaSampleCutoff", d.MetaSamplePValueCutoff, "Raw p-value cutoff counting a sample of a significant variant as an ASE hit."),
		plot:       fs.Bool("plot", d.Plot, "Save PNG plots of bins and p-value distributions."),
		verbose:    fs.Int("v", 0, "Verbose output: 1 adds per-stage counts, 2 logs every failing variant."),
	}
}

// settings resolves the configuration: defaults, then the -config file, then
// the environment, then flags set on the command line.
func (f *settingFlags) settings(fs *flag.FlagSet) config.Config {
	var err error
	switch {
	case *f.verbose >= 2:
		log.SetLevel(log.TraceLevel)
	case *f.verbose == 1:
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	if *f.config != "" {
		if err = cfg.Load(*f.config); err != nil {
			log.Fatalf("ERROR: %v", err)
		}
	}
	if err = cfg.FromEnv(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "i":
			cfg.Input = *f.input
		case "o":
			cfg.OutputDir = *f.output
		case "minQual":
			cfg.QualityScoreMin = *f.quality
		case "indelRegion":
			cfg.IndelExclusionRegionLength = *f.indel
		case "minReads":
			cfg.MinTotalReadCount = *f.minReads
		case "binomialP":
			cfg.BinomialProbability = *f.binomialP
		case "multiDimCutoff":
			cfg.MultiDimAdjustPValueCutoff = *f.multiDim
		case "metaCutoff":
			cfg.MetaBHAdjPValueCutoff = *f.metaBH
		case "metaSampleCutoff":
			cfg.MetaSamplePValueCutoff = *f.metaSample
		case "plot":
			cfg.Plot = *f.plot
		}
	})
	if cfg.Input == "" {
		fs.Usage()
		errExit("\nERROR: must have an input for -i, in -config, or in VADT_FILE_NAME")
	}
	if err = cfg.Validate(); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	return cfg
}
