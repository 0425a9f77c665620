package pipeline

import (
	"io"
	"path/filepath"
	"strconv"

	"github.com/mjtiv/VADT/config"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/meta"
	"github.com/mjtiv/VADT/multidim"
	"github.com/mjtiv/VADT/report"
	"github.com/mjtiv/VADT/tally"
	log "github.com/sirupsen/logrus"
)

// Names of the statistical tests, used in summary report names.
const (
	MultiDimTest = "multi_dimensional_pvalue_adj"
	MetaTest     = "meta_analysis"
)

const metaReportHeader = "\t\t\tAnalyzed_Values\tChi_Square_Value\tDegrees_of_Freedom\tMeta_p-value\tFDR_q-value\tSignificant"

// MultiDim runs the multi-dimensional adjustment on d and writes its results
// and reports.
func MultiDim(cfg config.Config, d *Dataset) error {
	dir, err := outputDir(cfg, MultiDimDir)
	if err != nil {
		return err
	}
	path := func(name string) string { return filepath.Join(dir, name) }

	res, err := multidim.Adjust(d.Rows, cfg.MultiDimAdjustPValueCutoff)
	if err != nil {
		return err
	}
	sig, notSig := res.Split()
	log.WithFields(log.Fields{"variants": len(d.Rows), "passing": res.Passing, "significant": len(sig)}).Info("multi-dimensional adjustment complete")

	err = writeFile(path("multi_dim_adj_pvalues_testable.txt"), func(w io.Writer) error {
		return res.WriteAll(w, d.Header, d.Rows)
	})
	if err != nil {
		return err
	}
	err = writeFile(path("sig_multi_dim_adj_results.txt"), func(w io.Writer) error {
		return res.Write(w, d.Header, d.Rows, sig)
	})
	if err != nil {
		return err
	}
	err = writeFile(path("not_sig_multi_dim_adj_results.txt"), func(w io.Writer) error {
		return res.Write(w, d.Header, d.Rows, notSig)
	})
	if err != nil {
		return err
	}

	t, err := tally.Count(d.Header.Samples(), d.Rows, sig, res.IsSignificant)
	if err != nil {
		return err
	}
	corrected := make([]float64, len(res.Variants))
	for i := range res.Variants {
		corrected[i] = res.Variants[i].Corrected
	}
	return writeReports(cfg, d, engine{
		test:      MultiDimTest,
		dir:       dir,
		tally:     t,
		rowSig:    func(i int) bool { return res.Variants[i].Significant() },
		corrected: corrected,
	})
}

// Meta runs the meta-analysis on d and writes its results and reports.
func Meta(cfg config.Config, d *Dataset) error {
	dir, err := outputDir(cfg, MetaDir)
	if err != nil {
		return err
	}
	path := func(name string) string { return filepath.Join(dir, name) }

	samples := d.Header.Samples()
	res, err := meta.Analyze(samples, d.Rows, cfg.MetaBHAdjPValueCutoff)
	if err != nil {
		return err
	}
	sig, notSig := res.Split()
	log.WithFields(log.Fields{"variants": len(d.Rows), "significant": len(sig)}).Info("meta-analysis complete")

	err = writeFile(path("variant_meta_analysis_results.txt"), func(w io.Writer) error {
		return res.WriteResults(w, d.Header, d.Rows)
	})
	if err != nil {
		return err
	}
	err = writeFile(path("sig_meta_analysis_variants.txt"), func(w io.Writer) error {
		return meta.WriteRows(w, d.Header, d.Rows, sig)
	})
	if err != nil {
		return err
	}
	err = writeFile(path("not_sig_meta_analysis_variants.txt"), func(w io.Writer) error {
		return meta.WriteRows(w, d.Header, d.Rows, notSig)
	})
	if err != nil {
		return err
	}

	t, err := tally.Count(samples, d.Rows, sig, res.SampleHits(d.Rows, cfg.MetaSamplePValueCutoff))
	if err != nil {
		return err
	}
	corrected := make([]float64, len(res.Variants))
	for i := range res.Variants {
		corrected[i] = res.Variants[i].QValue
	}
	return writeReports(cfg, d, engine{
		test:      MetaTest,
		dir:       dir,
		tally:     t,
		rowSig:    func(i int) bool { return res.Variants[i].Significant },
		corrected: corrected,
		extra: &report.Extra{
			Header: metaReportHeader,
			Columns: func(i int) []string {
				v := res.Variants[i]
				return []string{"", "meta_results", v.AnalyzedValues(), genotype.FormatFloat(v.ChiSquare),
					strconv.Itoa(v.DF), meta.FormatPValue(v.PValue), genotype.FormatFloat(v.QValue), v.Verdict()}
			},
		},
	})
}

// engine carries what the shared reports need from one statistical test.
type engine struct {
	test      string
	dir       string
	tally     *tally.Tally
	rowSig    func(i int) bool
	corrected []float64
	extra     *report.Extra // joined with the variant report when set
}

func writeReports(cfg config.Config, d *Dataset, e engine) error {
	var err error
	path := func(name string) string { return filepath.Join(e.dir, name) }

	e.tally.Global.TestableVariants = len(d.Rows)
	e.tally.Global.SigVariants = len(e.tally.Variants)
	if err = e.tally.Check(); err != nil {
		return err
	}

	testable := tally.Testable(d.Header.Samples(), d.Rows)
	err = writeFile(path("sig_samples_report.txt"), func(w io.Writer) error {
		return report.WriteSamples(w, e.tally, testable)
	})
	if err != nil {
		return err
	}

	var bins report.VariantBins
	err = writeFile(path("sig_variants_report.txt"), func(w io.Writer) error {
		bins, err = report.WriteVariants(w, d.Header, e.tally, nil)
		return err
	})
	if err != nil {
		return err
	}
	if e.extra != nil {
		err = writeFile(path("sig_variants_report_and_meta_results.txt"), func(w io.Writer) error {
			_, err = report.WriteVariants(w, d.Header, e.tally, e.extra)
			return err
		})
		if err != nil {
			return err
		}
	}

	err = writeFile(path("ase_freq_prevalence_among_samples.txt"), func(w io.Writer) error {
		return report.WriteBins(w, bins.Prevalence, report.PrevalenceDescription)
	})
	if err != nil {
		return err
	}
	err = writeFile(path("alt_allele_freq_binning_one_ase_hit.txt"), func(w io.Writer) error {
		return report.WriteBins(w, bins.AltFreq, report.AltFreqDescription)
	})
	if err != nil {
		return err
	}

	biases := report.RefBiases(d.Rows, e.rowSig)
	err = writeFile(path("data_for_ref_allele_bias_plotting.txt"), func(w io.Writer) error {
		return report.WriteRefBias(w, biases)
	})
	if err != nil {
		return err
	}

	summary := report.Summary{
		Test:        e.test,
		Parameters:  cfg.Describe(),
		Filter:      d.Filter,
		Indel:       d.Indel,
		Tally:       e.tally,
		AvgRefRatio: report.MeanRatio(biases),
	}
	err = writeFile(path("Summary_Report_"+e.test+".txt"), summary.Write)
	if err != nil {
		return err
	}

	g := e.tally.Global
	log.WithFields(log.Fields{
		"test":        e.test,
		"sigVariants": g.SigVariants,
		"sigSamples":  g.SigASE,
		"tests":       g.Tests,
	}).Info("reports written")
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debug("\n" + report.Sketch(bins.Prevalence, e.test+": ASE prevalence among samples"))
	}

	if !cfg.Plot {
		return nil
	}
	err = report.PlotBins(bins.Prevalence, "ASE Prevalence Among Samples", "Fraction of samples with ASE", path("ase_freq_prevalence_among_samples.png"))
	if err != nil {
		return err
	}
	err = report.PlotBins(bins.AltFreq, "Alt Allele Frequency of Variants With an ASE Hit", "Alt allele frequency", path("alt_allele_freq_binning_one_ase_hit.png"))
	if err != nil {
		return err
	}
	err = report.PlotHistogram(e.corrected, "Corrected P-values", "corrected p-value", path("corrected_pvalues.png"))
	if err != nil {
		return err
	}
	return report.PlotHistogram(report.Ratios(biases), "Reference Allele Ratio of Testable Variants", "ref / total reads", path("ref_allele_ratio.png"))
}
