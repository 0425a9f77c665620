// Package fdr implements Benjamini-Hochberg false discovery rate correction.
package fdr

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Places is the number of decimal places adjusted values are rounded to.
const Places = 8

// ErrOrderMismatch is returned when corrected values are not aligned with their inputs.
var ErrOrderMismatch = errors.New("corrected p-values are out of input order")

// PValue pairs a raw p-value with its corrected value and its position in the input.
type PValue struct {
	Index    int
	Raw      float64
	Adjusted float64
}

// Correct returns the BH adjusted value of each input, in input order.
func Correct(pvalues []float64) []float64 {
	records := Records(pvalues)
	answer := make([]float64, len(records))
	for i := range records {
		answer[i] = records[i].Adjusted
	}
	return answer
}

// Records runs the step-up procedure and returns one PValue per input, in input order.
// Ties are stepped through with the later input first.
func Records(pvalues []float64) []PValue {
	m := len(pvalues)
	records := make([]PValue, m)
	for i := range pvalues {
		records[i] = PValue{Index: i, Raw: pvalues[i], Adjusted: math.NaN()}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Raw != records[j].Raw {
			return records[i].Raw > records[j].Raw
		}
		return records[i].Index > records[j].Index
	})

	var adj, prev float64
	for i := range records {
		adj = math.Min(1, Round(records[i].Raw*float64(m)/float64(m-i), Places))
		if i > 0 && adj > prev {
			adj = prev
		}
		records[i].Adjusted = adj
		prev = adj
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Index < records[j].Index })
	return records
}

// Check verifies that records line up with raw.
func Check(raw []float64, records []PValue) error {
	if len(raw) != len(records) {
		return errors.Wrapf(ErrOrderMismatch, "%d inputs, %d corrected values", len(raw), len(records))
	}
	for i := range records {
		if records[i].Index != i || records[i].Raw != raw[i] {
			return errors.Wrapf(ErrOrderMismatch, "position %d", i)
		}
	}
	return nil
}

// Round x to the given number of decimal places, halves away from zero.
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
