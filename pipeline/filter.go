package pipeline

import (
	"io"
	"path/filepath"

	"github.com/mjtiv/VADT/config"
	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/filter"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/indel"
	"github.com/mjtiv/VADT/report"
	log "github.com/sirupsen/logrus"
)

// Filter applies the variant gates to cfg.Input and writes the testable
// dataset, the failure logs and the indel zones.
func Filter(cfg config.Config) (*Dataset, error) {
	dir, err := outputDir(cfg, FilterDir)
	if err != nil {
		return nil, err
	}
	path := func(name string) string { return filepath.Join(dir, name) }

	logs, closeLogs := filter.CreateLogs(path("GATK_Failing_RNA_Seq_variants.txt"), path("Other_Failing_RNA_Seq_variants.txt"))
	defer closeLogs()
	if log.IsLevelEnabled(log.TraceLevel) {
		trace := log.StandardLogger().WriterLevel(log.TraceLevel)
		defer trace.Close()
		logs.CallerFilter = io.MultiWriter(logs.CallerFilter, trace)
		logs.Other = io.MultiWriter(logs.Other, trace)
	}

	log.WithField("file", cfg.Input).Info("filtering variants")
	res, err := filter.Run(cfg.Input, cfg.FilterSettings(), logs)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"variants": res.Stats.Variants,
		"samples":  res.Stats.Samples,
		"zones":    res.Stats.Zones,
		"testable": res.Stats.Count(filter.Pass),
	}).Info("filtering complete")
	for _, o := range filter.Outcomes() {
		log.Debugf("%s\t%d", o, res.Stats.Count(o))
	}

	err = writeFile(path(TestableFile), func(w io.Writer) error {
		return dataset.Write(w, res.Header, res.Rows)
	})
	if err != nil {
		return nil, err
	}
	err = writeFile(path("Identified_Indel_Regions.txt"), func(w io.Writer) error {
		return indel.WriteZones(w, res.Header, res.Zones.Zones)
	})
	if err != nil {
		return nil, err
	}
	err = writeFile(path("Identified_Indel_Regions.bed"), func(w io.Writer) error {
		indel.WriteBed(w, res.Zones.Zones)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cfg.Plot {
		err = report.PlotHistogram(biallelicPValues(res.Rows), "Binomial P-values of Biallelic Samples", "p-value", path("Biallelic_pvalues.png"))
		if err != nil {
			return nil, err
		}
	}

	return &Dataset{Header: res.Header, Rows: res.Rows, Filter: &res.Stats, Indel: &res.Zones.Stats}, nil
}

func biallelicPValues(rows []dataset.Row) []float64 {
	var answer []float64
	for i := range rows {
		for _, c := range rows[i].Calls {
			if c.Label == genotype.Biallelic {
				answer = append(answer, c.PValue)
			}
		}
	}
	return answer
}
