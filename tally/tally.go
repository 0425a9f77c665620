// Package tally counts the per-sample and per-variant outcomes of a
// significant-results dataset.
package tally

import (
	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/genotype"
	"github.com/pkg/errors"
)

// ErrUnknownGenotype is returned for a homozygous call that is neither reference nor alternate.
var ErrUnknownGenotype = errors.New("unrecognized homozygous genotype")

// ErrSampleMismatch is returned when tallies over different samples are merged.
var ErrSampleMismatch = errors.New("tallies cover different samples")

// Counters for one sample, one variant, or the whole dataset.
// Each cell lands in exactly one of Biallelic, Homozygous or NonTestable.
type Counters struct {
	Biallelic     int
	SigASE        int
	SigASERef     int
	SigASEAlt     int
	NoASE         int
	Homozygous    int
	HomozygousRef int
	HomozygousAlt int
	NonTestable   int
}

// Add accumulates o into c.
func (c *Counters) Add(o Counters) {
	c.Biallelic += o.Biallelic
	c.SigASE += o.SigASE
	c.SigASERef += o.SigASERef
	c.SigASEAlt += o.SigASEAlt
	c.NoASE += o.NoASE
	c.Homozygous += o.Homozygous
	c.HomozygousRef += o.HomozygousRef
	c.HomozygousAlt += o.HomozygousAlt
	c.NonTestable += o.NonTestable
}

// Cells is the number of cells counted.
func (c Counters) Cells() int {
	return c.Biallelic + c.Homozygous + c.NonTestable
}

// Global holds dataset wide totals.
type Global struct {
	TestableVariants int // variants in the testable dataset
	SigVariants      int // variants with at least one significant sample
	Tests            int // cells tallied
	Counters
}

// Significance reports whether sample j of variant i is significant.
type Significance func(i, j int) bool

// Tally accumulates counters over significant variants.
type Tally struct {
	Samples    []string
	PerSample  []Counters
	Variants   []dataset.Row
	Index      []int // dataset position of each entry in Variants
	PerVariant []Counters
	Global     Global
}

// New returns an empty Tally over samples.
func New(samples []string) *Tally {
	return &Tally{Samples: samples, PerSample: make([]Counters, len(samples))}
}

// Add tallies every cell of rows[i].
func (t *Tally) Add(rows []dataset.Row, i int, sig Significance) error {
	var c, v Counters
	row := rows[i]
	if len(row.Calls) != len(t.Samples) {
		return errors.Errorf("variant %s has %d samples, expected %d", row.Name(), len(row.Calls), len(t.Samples))
	}
	for j := range row.Calls {
		c = Counters{}
		switch call := row.Calls[j]; call.Label {
		case genotype.Biallelic:
			c.Biallelic++
			switch {
			case !sig(i, j):
				c.NoASE++
			case call.Ref > call.Alt:
				c.SigASE++
				c.SigASERef++
			default:
				c.SigASE++
				c.SigASEAlt++
			}
		case genotype.Homozygous:
			c.Homozygous++
			switch genotype.ZygosityOf(call.Genotype) {
			case genotype.HomozygousRef:
				c.HomozygousRef++
			case genotype.HomozygousAlt:
				c.HomozygousAlt++
			default:
				return errors.Wrapf(ErrUnknownGenotype, "%s at %s sample %s", call.Genotype, row.Name(), t.Samples[j])
			}
		default:
			c.NonTestable++
		}
		t.PerSample[j].Add(c)
		v.Add(c)
	}
	t.Variants = append(t.Variants, row)
	t.Index = append(t.Index, i)
	t.PerVariant = append(t.PerVariant, v)
	t.Global.Tests += len(row.Calls)
	t.Global.Counters.Add(v)
	return nil
}

// Count tallies the rows at indexes.
func Count(samples []string, rows []dataset.Row, indexes []int, sig Significance) (*Tally, error) {
	t := New(samples)
	for _, i := range indexes {
		if err := t.Add(rows, i, sig); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Merge appends the variants of o, which must cover the same samples, to t.
func (t *Tally) Merge(o *Tally) error {
	if len(t.Samples) != len(o.Samples) {
		return ErrSampleMismatch
	}
	for j := range t.Samples {
		if t.Samples[j] != o.Samples[j] {
			return errors.Wrapf(ErrSampleMismatch, "%s != %s", t.Samples[j], o.Samples[j])
		}
	}
	for j := range t.PerSample {
		t.PerSample[j].Add(o.PerSample[j])
	}
	t.Variants = append(t.Variants, o.Variants...)
	t.Index = append(t.Index, o.Index...)
	t.PerVariant = append(t.PerVariant, o.PerVariant...)
	t.Global.Tests += o.Global.Tests
	t.Global.Counters.Add(o.Global.Counters)
	return nil
}

// Check verifies that every cell was counted exactly once.
func (t *Tally) Check() error {
	for j := range t.PerSample {
		if t.PerSample[j].Cells() != len(t.Variants) {
			return errors.Errorf("sample %s counted %d cells over %d variants", t.Samples[j], t.PerSample[j].Cells(), len(t.Variants))
		}
	}
	for i := range t.PerVariant {
		if t.PerVariant[i].Cells() != len(t.Samples) {
			return errors.Errorf("variant %s counted %d cells over %d samples", t.Variants[i].Name(), t.PerVariant[i].Cells(), len(t.Samples))
		}
	}
	if t.Global.Cells() != t.Global.Tests {
		return errors.Errorf("%d cells counted for %d tests", t.Global.Cells(), t.Global.Tests)
	}
	return nil
}

// Testable counts the biallelic calls of each sample across the whole testable dataset.
func Testable(samples []string, rows []dataset.Row) []int {
	answer := make([]int, len(samples))
	for i := range rows {
		for _, j := range rows[i].Biallelic() {
			answer[j]++
		}
	}
	return answer
}
