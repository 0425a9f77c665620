// Package pipeline runs the stages of an allele specific expression analysis
// and writes their output files.
package pipeline

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mjtiv/VADT/config"
	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/filter"
	"github.com/mjtiv/VADT/indel"
	"github.com/mjtiv/VADT/record"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/sync/errgroup"
)

// Output directories created under the configured output location.
const (
	FilterDir   = "Filtering_Results"
	MultiDimDir = "Multi_Dim_Adj_Results"
	MetaDir     = "Meta_Analysis_Results"
)

// TestableFile is the name of the testable dataset written by Filter.
const TestableFile = "Testable_Informative_Filt_Variants.txt"

// Dataset is the testable dataset handed to the statistical engines.
// Filter and Indel are nil when it was loaded from a previous run.
type Dataset struct {
	Header record.Header
	Rows   []dataset.Row
	Filter *filter.Stats
	Indel  *indel.Stats
}

// Run filters cfg.Input and analyzes the testable variants with both engines.
func Run(cfg config.Config) error {
	d, err := Filter(cfg)
	if err != nil {
		return err
	}
	return Analyze(cfg, d)
}

// Analyze runs the multi-dimensional adjustment and the meta-analysis on d
// concurrently. Neither engine modifies d.
func Analyze(cfg config.Config, d *Dataset) error {
	var g errgroup.Group
	g.Go(func() error { return MultiDim(cfg, d) })
	g.Go(func() error { return Meta(cfg, d) })
	return g.Wait()
}

// Load reads a testable dataset written by a previous run.
func Load(path string) (*Dataset, error) {
	header, rows, err := dataset.Read(path)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"file": path, "variants": len(rows), "samples": len(header.Samples())}).Info("loaded testable dataset")
	return &Dataset{Header: header, Rows: rows}, nil
}

func outputDir(cfg config.Config, name string) (string, error) {
	dir := filepath.Join(cfg.OutputDir, name)
	err := os.MkdirAll(dir, 0755)
	return dir, errors.Wrapf(err, "creating %s", dir)
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(w io.Writer) error) error {
	out := fileio.EasyCreate(path)
	err := write(out)
	exception.PanicOnErr(out.Close())
	return errors.Wrapf(err, "writing %s", path)
}
