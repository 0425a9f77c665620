package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/genotype"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// RefBias is the pooled read support of the biallelic samples of one variant.
type RefBias struct {
	Name  string
	Sig   bool
	Ref   int
	Alt   int
	Ratio float64
}

// Total read depth.
func (r RefBias) Total() int {
	return r.Ref + r.Alt
}

// Status is the label written for Sig.
func (r RefBias) Status() string {
	if r.Sig {
		return "Sig_ASE"
	}
	return "No_ASE"
}

// RefBiases pools the biallelic counts of every row. sig reports whether row i is significant.
func RefBiases(rows []dataset.Row, sig func(i int) bool) []RefBias {
	answer := make([]RefBias, len(rows))
	for i := range rows {
		b := RefBias{Name: rows[i].Name(), Sig: sig(i)}
		for _, c := range rows[i].Calls {
			if c.Label != genotype.Biallelic {
				continue
			}
			b.Ref += c.Ref
			b.Alt += c.Alt
		}
		if b.Total() > 0 {
			b.Ratio = float64(b.Ref) / float64(b.Total())
		}
		answer[i] = b
	}
	return answer
}

// Ratios returns the reference ratio of each entry.
func Ratios(biases []RefBias) []float64 {
	answer := make([]float64, len(biases))
	for i := range biases {
		answer[i] = biases[i].Ratio
	}
	return answer
}

// MeanRatio is the average reference ratio, zero when there are no variants.
func MeanRatio(biases []RefBias) float64 {
	if len(biases) == 0 {
		return 0
	}
	mean, err := stats.Mean(Ratios(biases))
	if err != nil {
		return 0
	}
	return mean
}

// WriteRefBias writes the table used to plot reference allele bias.
func WriteRefBias(w io.Writer, biases []RefBias) error {
	s := new(strings.Builder)
	s.WriteString("Variant_Name\tStatus\tRef_Count\tAlt_Count\tTotal_Count\tRatio\n")
	for _, b := range biases {
		fmt.Fprintf(s, "%s\t%s\t%d\t%d\t%d\t%s\n", b.Name, b.Status(), b.Ref, b.Alt, b.Total(), genotype.FormatFloat(b.Ratio))
	}
	_, err := io.WriteString(w, s.String())
	return errors.Wrap(err, "writing reference bias data")
}
