// Package meta combines the sample p-values of each variant with Fisher's
// method and corrects the combined values across variants.
package meta

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/fdr"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/record"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// Places is the precision of the combined p-value, used both for correction and output.
const Places = 12

// Fisher returns the statistic -2*sum(ln p), its degrees of freedom and the
// upper tail probability of the chi-square distribution.
func Fisher(pvalues []float64) (stat float64, df int, p float64) {
	for _, v := range pvalues {
		stat -= 2 * math.Log(v)
	}
	df = 2 * len(pvalues)
	if math.IsInf(stat, 1) {
		return stat, df, 0
	}
	return stat, df, distuv.ChiSquared{K: float64(df)}.Survival(stat)
}

// Analyzed is one biallelic sample contributing to a combined test.
type Analyzed struct {
	Sample string
	PValue float64
}

// Variant is the combined test of one testable variant.
type Variant struct {
	Samples     int
	Analyzed    []Analyzed
	ChiSquare   float64
	DF          int
	PValue      float64
	QValue      float64
	Significant bool
}

// Result of the meta-analysis in dataset order.
type Result struct {
	Cutoff   float64
	Variants []Variant
}

// Analyze runs Fisher's method on every row and BH corrects the combined values.
func Analyze(samples []string, rows []dataset.Row, cutoff float64) (*Result, error) {
	res := &Result{Cutoff: cutoff, Variants: make([]Variant, len(rows))}
	combined := make([]float64, len(rows))
	var pvalues []float64
	var p float64
	for i := range rows {
		if len(rows[i].Calls) != len(samples) {
			return nil, errors.Errorf("variant %s has %d samples, expected %d", rows[i].Name(), len(rows[i].Calls), len(samples))
		}
		v := &res.Variants[i]
		v.Samples = len(rows[i].Calls)
		pvalues = pvalues[:0]
		for _, j := range rows[i].Biallelic() {
			pvalues = append(pvalues, rows[i].Calls[j].PValue)
			v.Analyzed = append(v.Analyzed, Analyzed{Sample: samples[j], PValue: rows[i].Calls[j].PValue})
		}
		if len(pvalues) == 0 {
			return nil, errors.Errorf("variant %s has no biallelic samples", rows[i].Name())
		}
		v.ChiSquare, v.DF, p = Fisher(pvalues)
		v.PValue = fdr.Round(p, Places)
		combined[i] = v.PValue
	}

	corrected := fdr.Records(combined)
	if err := fdr.Check(combined, corrected); err != nil {
		return nil, err
	}
	for i := range corrected {
		res.Variants[i].QValue = corrected[i].Adjusted
		res.Variants[i].Significant = corrected[i].Adjusted < cutoff
	}
	return res, nil
}

// Split partitions variant indexes into significant and not significant.
func (r *Result) Split() (sig, notSig []int) {
	for i := range r.Variants {
		if r.Variants[i].Significant {
			sig = append(sig, i)
		} else {
			notSig = append(notSig, i)
		}
	}
	return sig, notSig
}

// SampleHits returns a predicate counting a biallelic sample as a hit when
// its variant is significant and its raw p-value is below sampleCutoff.
// It is a descriptive estimate, not a corrected statistic.
func (r *Result) SampleHits(rows []dataset.Row, sampleCutoff float64) func(i, j int) bool {
	return func(i, j int) bool {
		c := rows[i].Calls[j]
		return r.Variants[i].Significant && c.Label == genotype.Biallelic && c.PValue < sampleCutoff
	}
}

// Verdict renders Significant as written to the result files.
func (v Variant) Verdict() string {
	if v.Significant {
		return "yes"
	}
	return "no"
}

// AnalyzedValues lists sample:p pairs, with p rounded to five places.
func (v Variant) AnalyzedValues() string {
	words := make([]string, len(v.Analyzed))
	for i, a := range v.Analyzed {
		words[i] = a.Sample + ":" + genotype.FormatFloat(fdr.Round(a.PValue, 5))
	}
	return strings.Join(words, ", ")
}

// FormatPValue writes a combined p-value at the precision it was rounded to.
func FormatPValue(p float64) string {
	return fmt.Sprintf("%.*f", Places, p)
}

// Columns returns the result fields appended to variant rows.
func (v Variant) Columns() []string {
	return []string{
		strconv.Itoa(v.Samples),
		v.AnalyzedValues(),
		strconv.Itoa(len(v.Analyzed)),
		genotype.FormatFloat(v.ChiSquare),
		strconv.Itoa(v.DF),
		FormatPValue(v.PValue),
		genotype.FormatFloat(v.QValue),
		v.Verdict(),
	}
}

// ColumnNames are the headers of Columns.
var ColumnNames = []string{"Total_Samples", "Analyzed_Values", "Bi-Allelic_Samples", "chi-square_value",
	"Degrees_of_Freedom(2n)", "Meta_p-value", "BH_Adj_pvalue", "Significant"}

// WriteResults writes one line per variant: the first seven columns of the row followed by Columns.
func (r *Result) WriteResults(w io.Writer, header record.Header, rows []dataset.Row) error {
	var err error
	_, err = io.WriteString(w, strings.Join(append(header.Columns[:7:7], ColumnNames...), "\t")+"\n")
	if err != nil {
		return errors.Wrap(err, "writing meta-analysis results")
	}
	for i := range rows {
		_, err = io.WriteString(w, strings.Join(append(rows[i].Fixed[:7:7], r.Variants[i].Columns()...), "\t")+"\n")
		if err != nil {
			return errors.Wrap(err, "writing meta-analysis results")
		}
	}
	return nil
}

// WriteRows writes the dataset rows at indexes unchanged.
func WriteRows(w io.Writer, header record.Header, rows []dataset.Row, indexes []int) error {
	selected := make([]dataset.Row, len(indexes))
	for i, j := range indexes {
		selected[i] = rows[j]
	}
	return dataset.Write(w, header, selected)
}
