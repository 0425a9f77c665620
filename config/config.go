// Package config holds the thresholds and paths of a VADT run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/mjtiv/VADT/filter"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/fileio"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is prepended to the environment variable of every field.
const EnvPrefix = "vadt"

type Config struct {
	Input                      string  `yaml:"file_name" envconfig:"FILE_NAME"`
	OutputDir                  string  `yaml:"output_file_location" envconfig:"OUTPUT_FILE_LOCATION"`
	QualityScoreMin            float64 `yaml:"quality_score_min" envconfig:"QUALITY_SCORE_MIN"`
	IndelExclusionRegionLength int     `yaml:"indel_exclusion_region_length" envconfig:"INDEL_EXCLUSION_REGION_LENGTH"`
	MinTotalReadCount          int     `yaml:"min_total_read_count" envconfig:"MIN_TOTAL_READ_COUNT"`
	BinomialProbability        float64 `yaml:"binomial_probability_value" envconfig:"BINOMIAL_PROBABILITY_VALUE"`
	MultiDimAdjustPValueCutoff float64 `yaml:"multi_dim_adjust_pvalue_cutoff" envconfig:"MULTI_DIM_ADJUST_PVALUE_CUTOFF"`
	MetaBHAdjPValueCutoff      float64 `yaml:"meta_bh_adj_p_value_cutoff" envconfig:"META_BH_ADJ_P_VALUE_CUTOFF"`
	MetaSamplePValueCutoff     float64 `yaml:"meta_sample_p_value_cutoff" envconfig:"META_SAMPLE_P_VALUE_CUTOFF"`
	Plot                       bool    `yaml:"plot" envconfig:"PLOT"`
}

// Default returns the thresholds used when nothing else is given.
func Default() Config {
	return Config{
		OutputDir:                  ".",
		QualityScoreMin:            20,
		IndelExclusionRegionLength: 1,
		MinTotalReadCount:          20,
		BinomialProbability:        0.5,
		MultiDimAdjustPValueCutoff: 0.05,
		MetaBHAdjPValueCutoff:      0.05,
		MetaSamplePValueCutoff:     0.05,
	}
}

// Load overlays the file at path onto c. Files ending in .yaml or .yml are
// read as YAML, anything else as a legacy parameter file.
func (c *Config) Load(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return c.LoadYAML(path)
	default:
		return c.LoadParameterFile(path)
	}
}

// LoadYAML overlays the keys present in a YAML file onto c.
func (c *Config) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading configuration")
	}
	err = yaml.UnmarshalStrict(data, c)
	return errors.Wrapf(err, "parsing %s", path)
}

// FromEnv overlays any VADT_ environment variables onto c.
func (c *Config) FromEnv() error {
	err := envconfig.Process(EnvPrefix, c)
	return errors.Wrap(err, "reading environment")
}

// legacy parameter names that are checked but have no effect
var ignoredKeys = map[string]bool{
	"Minimum_Number_of_Samples_for_ASE":     true,
	"Number_of_Reference_Alleles_Allowed":   true,
	"Number_of_Alternative_Alleles_Allowed": true,
}

// LoadParameterFile reads a parameter file whose lines hold one or more
// "--Key value" settings. Lines not starting with -- are comments.
func (c *Config) LoadParameterFile(path string) error {
	var err error
	file := fileio.EasyOpen(path)
	defer file.Close()
	for line, done := fileio.EasyNextLine(file); !done; line, done = fileio.EasyNextLine(file) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "--") {
			continue
		}
		for _, setting := range strings.Split(line, "--")[1:] {
			words := strings.Fields(setting)
			if len(words) == 0 {
				continue
			}
			if len(words) != 2 {
				return errors.Errorf("%s: expected --Key value, found --%s", path, setting)
			}
			if err = c.set(words[0], words[1]); err != nil {
				return errors.Wrap(err, path)
			}
		}
	}
	return nil
}

func (c *Config) set(key, value string) error {
	var err error
	switch key {
	case "File_Name":
		c.Input = value
	case "Output_File_Location":
		c.OutputDir = value
	case "Quality_Score_Minimum_for_Variants":
		c.QualityScoreMin, err = parseFloat(key, value)
	case "Indel_Exclusion_Region_Length":
		c.IndelExclusionRegionLength, err = parseInt(key, value)
	case "Minimum_Read_Counts":
		c.MinTotalReadCount, err = parseInt(key, value)
	case "Binomial_Probability_Value":
		c.BinomialProbability, err = parseFloat(key, value)
	case "Multi_Dim_adjust_pvalue_cutoff":
		c.MultiDimAdjustPValueCutoff, err = parseFloat(key, value)
	case "Meta_BH_adj_p_value_cutoff":
		c.MetaBHAdjPValueCutoff, err = parseFloat(key, value)
	case "Meta_sample_p_value_cutoff":
		c.MetaSamplePValueCutoff, err = parseFloat(key, value)
	case "Plot":
		c.Plot, err = strconv.ParseBool(value)
		err = errors.Wrapf(err, "incorrect input for %s", key)
	default:
		if !ignoredKeys[key] {
			return errors.Errorf("unrecognized parameter %s", key)
		}
		_, err = parseFloat(key, value)
	}
	return err
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	return f, errors.Wrapf(err, "incorrect input for %s", key)
}

func parseInt(key, value string) (int, error) {
	i, err := strconv.Atoi(value)
	return i, errors.Wrapf(err, "incorrect input for %s", key)
}

// Validate rejects values outside their meaningful range.
func (c Config) Validate() error {
	switch {
	case c.Input == "":
		return errors.New("no input file given")
	case c.IndelExclusionRegionLength < 0:
		return errors.Errorf("indel exclusion region length must be non-negative, found %d", c.IndelExclusionRegionLength)
	case c.MinTotalReadCount < 0:
		return errors.Errorf("minimum read count must be non-negative, found %d", c.MinTotalReadCount)
	case !(c.BinomialProbability > 0 && c.BinomialProbability < 1):
		return errors.Errorf("binomial probability must be between 0 and 1, found %g", c.BinomialProbability)
	}
	for _, cutoff := range []struct {
		name  string
		value float64
	}{
		{"multi-dimensional cutoff", c.MultiDimAdjustPValueCutoff},
		{"meta BH cutoff", c.MetaBHAdjPValueCutoff},
		{"meta sample cutoff", c.MetaSamplePValueCutoff},
	} {
		if !(cutoff.value > 0 && cutoff.value <= 1) {
			return errors.Errorf("%s must be in (0, 1], found %g", cutoff.name, cutoff.value)
		}
	}
	return nil
}

// FilterSettings returns the thresholds used by the filter.
func (c Config) FilterSettings() filter.Settings {
	return filter.Settings{
		MinQuality:     c.QualityScoreMin,
		MinReadCount:   c.MinTotalReadCount,
		BinomialP:      c.BinomialProbability,
		IndelHalfWidth: c.IndelExclusionRegionLength,
	}
}

// Describe lists the settings for the summary report.
func (c Config) Describe() []string {
	return []string{
		"Input_File\t" + c.Input,
		"Output_Location\t" + c.OutputDir,
		fmt.Sprintf("Quality_Score_Minimum\t%g", c.QualityScoreMin),
		fmt.Sprintf("Indel_Exclusion_Region_Length\t%d", c.IndelExclusionRegionLength),
		"Reference_Alleles_Allowed\t1",
		"Alternative_Alleles_Allowed\t1",
		fmt.Sprintf("Minimum_Read_Counts\t%d", c.MinTotalReadCount),
		fmt.Sprintf("Binomial_Probability_Value\t%g", c.BinomialProbability),
		fmt.Sprintf("Multi_Dim_Adjust_PValue_Cutoff\t%g", c.MultiDimAdjustPValueCutoff),
		fmt.Sprintf("Meta_BH_Adj_PValue_Cutoff\t%g", c.MetaBHAdjPValueCutoff),
		fmt.Sprintf("Meta_Sample_PValue_Cutoff\t%g", c.MetaSamplePValueCutoff),
	}
}
