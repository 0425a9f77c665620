// Package multidim assigns each variant its own significance threshold by
// pooling its sample p-values, correcting the pooled values across variants
// and redistributing the passing budget by the number of tested samples.
package multidim

import (
	"io"
	"math"

	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/fdr"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/record"
	"github.com/pkg/errors"
)

// Flag is the per-sample verdict against the variant threshold.
type Flag byte

const (
	NotApplicable Flag = iota
	Pass
	Fail
)

func (f Flag) String() string {
	switch f {
	case Pass:
		return "Pass"
	case Fail:
		return "Fail"
	default:
		return "Na"
	}
}

// Variant holds the adjustment of one testable variant.
type Variant struct {
	Biallelic int
	MinP      float64
	Pooled    float64
	Corrected float64
	Threshold float64
	Flags     []Flag
}

// Significant is true when at least one sample passed the variant threshold.
func (v Variant) Significant() bool {
	for _, f := range v.Flags {
		if f == Pass {
			return true
		}
	}
	return false
}

// Result of adjusting a dataset. Variants are in dataset order.
type Result struct {
	Cutoff   float64
	Passing  int
	Variants []Variant
}

// Adjust computes the variant thresholds and sample flags for rows.
func Adjust(rows []dataset.Row, cutoff float64) (*Result, error) {
	res := &Result{Cutoff: cutoff, Variants: make([]Variant, len(rows))}
	pooled := make([]float64, len(rows))
	for i := range rows {
		v := &res.Variants[i]
		v.MinP = math.Inf(1)
		for _, j := range rows[i].Biallelic() {
			v.Biallelic++
			v.MinP = math.Min(v.MinP, rows[i].Calls[j].PValue)
		}
		if v.Biallelic == 0 {
			return nil, errors.Errorf("variant %s has no biallelic samples", rows[i].Name())
		}
		v.Pooled = math.Min(1, v.MinP*float64(v.Biallelic))
		pooled[i] = v.Pooled
	}

	corrected := fdr.Records(pooled)
	if err := fdr.Check(pooled, corrected); err != nil {
		return nil, err
	}
	for i := range corrected {
		res.Variants[i].Corrected = corrected[i].Adjusted
		if corrected[i].Adjusted < cutoff {
			res.Passing++
		}
	}

	for i := range rows {
		v := &res.Variants[i]
		v.Threshold = Threshold(res.Passing, cutoff, v.Biallelic, len(rows))
		v.Flags = make([]Flag, len(rows[i].Calls))
		for j, c := range rows[i].Calls {
			switch {
			case c.Label != genotype.Biallelic:
				v.Flags[j] = NotApplicable
			case c.PValue < v.Threshold:
				v.Flags[j] = Pass
			default:
				v.Flags[j] = Fail
			}
		}
	}
	return res, nil
}

// Threshold is the per-variant significance cutoff for a variant with biallelic tested samples.
func Threshold(passing int, cutoff float64, biallelic, variants int) float64 {
	return fdr.Round(float64(passing)*cutoff/float64(biallelic*variants), fdr.Places)
}

// IsSignificant reports whether sample j of variant i passed its threshold.
func (r *Result) IsSignificant(i, j int) bool {
	return r.Variants[i].Flags[j] == Pass
}

// Split partitions variant indexes into those with and without a passing sample.
func (r *Result) Split() (sig, notSig []int) {
	for i := range r.Variants {
		if r.Variants[i].Significant() {
			sig = append(sig, i)
		} else {
			notSig = append(notSig, i)
		}
	}
	return sig, notSig
}

// Annotate renders row i with its threshold in the FORMAT column and each sample's flag.
func (r *Result) Annotate(i int, row dataset.Row) string {
	v := r.Variants[i]
	cells := make([]string, len(row.Calls))
	for j := range row.Calls {
		cells[j] = row.Calls[j].String() + ":" + v.Flags[j].String()
	}
	return row.Line(row.Format+":Var_Sig_Thres<"+genotype.FormatFloat(v.Threshold), cells)
}

// WriteAll emits every annotated row.
func (r *Result) WriteAll(w io.Writer, header record.Header, rows []dataset.Row) error {
	indexes := make([]int, len(rows))
	for i := range indexes {
		indexes[i] = i
	}
	return r.Write(w, header, rows, indexes)
}

// Write emits the annotated rows at indexes.
func (r *Result) Write(w io.Writer, header record.Header, rows []dataset.Row, indexes []int) error {
	var err error
	if _, err = io.WriteString(w, header.String()+"\n"); err != nil {
		return errors.Wrap(err, "writing multi-dimensional results")
	}
	for _, i := range indexes {
		if _, err = io.WriteString(w, r.Annotate(i, rows[i])+"\n"); err != nil {
			return errors.Wrap(err, "writing multi-dimensional results")
		}
	}
	return nil
}
