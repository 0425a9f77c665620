// Package filter applies the quality gates that decide which variants are
// testable for allele specific expression and labels every sample of the
// variants that pass.
package filter

import (
	"io"
	"strings"

	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/indel"
	"github.com/mjtiv/VADT/record"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// Settings are the thresholds used while filtering.
type Settings struct {
	MinQuality     float64
	MinReadCount   int
	BinomialP      float64
	IndelHalfWidth int
}

// Filter assigns every variant to an Outcome and builds the testable dataset.
type Filter struct {
	settings Settings
	zones    *indel.Index
	Stats    Stats
}

// New returns a Filter excluding positions covered by zones. zones may be nil.
func New(s Settings, zones *indel.Index, samples int) *Filter {
	f := &Filter{settings: s, zones: zones}
	f.Stats.Samples = samples
	if zones != nil {
		f.Stats.Zones = len(zones.Zones)
	}
	return f
}

// Apply runs the gates on v in order and returns the first failing one, or
// Pass together with the testable row.
func (f *Filter) Apply(v record.Variant) (dataset.Row, Outcome, error) {
	var row dataset.Row
	o, err := f.gate(v)
	if err != nil {
		return row, o, err
	}
	if o != Pass {
		f.Stats.add(o)
		return row, o, nil
	}

	var counters sampleCounters
	row = dataset.Row{Fixed: v.Fixed(), Format: dataset.Format, Calls: make([]genotype.Call, len(v.Samples))}
	for i := range v.Samples {
		row.Calls[i], err = Classify(v.Samples[i], f.settings)
		if err != nil {
			return row, o, errors.Wrapf(err, "variant %s", v.Name())
		}
		counters.add(row.Calls[i])
	}
	o = counters.verdict(len(v.Samples))
	f.Stats.add(o)
	if o != Pass {
		return dataset.Row{}, o, nil
	}
	return row, o, nil
}

func (f *Filter) gate(v record.Variant) (Outcome, error) {
	if v.Filter != record.PassFilter {
		return FailCallerFilter, nil
	}
	q, ok, err := v.Quality()
	if err != nil {
		return Pass, err
	}
	if !ok || q < f.settings.MinQuality {
		return FailQuality, nil
	}
	if f.zones.Excludes(v.Chr, v.Pos) {
		return FailIndelZone, nil
	}
	if len(v.RefAlleles()) > 1 {
		return FailMultipleRef, nil
	}
	if len(v.AltAlleles()) > 1 {
		return FailMultipleAlt, nil
	}
	return Pass, nil
}

// Results collects the output of a filtering run.
type Results struct {
	Header record.Header
	Rows   []dataset.Row
	Zones  *indel.Index
	Stats  Stats
}

// Logs receive the input lines of failing variants prefixed with their failure token.
// Either writer may be nil.
type Logs struct {
	CallerFilter io.Writer
	Other        io.Writer
}

// Run makes two passes over input: the first builds the indel zones and the
// second applies the gates.
func Run(input string, s Settings, logs Logs) (*Results, error) {
	var err error
	res := new(Results)
	res.Zones, err = BuildZones(input, s.IndelHalfWidth)
	if err != nil {
		return nil, err
	}

	r, err := record.Open(input)
	if err != nil {
		return nil, err
	}
	defer cleanup(r)
	res.Header = r.Header

	if err = logs.writeHeader(r.Header); err != nil {
		return nil, err
	}

	f := New(s, res.Zones, len(r.Header.Samples()))
	var row dataset.Row
	var o Outcome
	for v, ok, err := r.Next(); ok || err != nil; v, ok, err = r.Next() {
		if err != nil {
			return nil, err
		}
		row, o, err = f.Apply(v)
		if err != nil {
			return nil, err
		}
		if o == Pass {
			res.Rows = append(res.Rows, row)
			continue
		}
		if err = logs.write(o, v); err != nil {
			return nil, err
		}
	}
	res.Stats = f.Stats
	return res, res.Stats.Check()
}

// BuildZones reads input once and returns the indel exclusion index.
func BuildZones(input string, halfWidth int) (*indel.Index, error) {
	b := indel.NewBuilder(halfWidth)
	r, err := record.Open(input)
	if err != nil {
		return nil, err
	}
	defer cleanup(r)
	for v, ok, err := r.Next(); ok || err != nil; v, ok, err = r.Next() {
		if err != nil {
			return nil, err
		}
		b.Add(v)
	}
	return b.Index(), nil
}

func (l Logs) writeHeader(h record.Header) error {
	var err error
	for _, w := range []io.Writer{l.CallerFilter, l.Other} {
		if w == nil {
			continue
		}
		if _, err = io.WriteString(w, "Failure\t"+h.String()+"\n"); err != nil {
			return errors.Wrap(err, "writing failure log")
		}
	}
	return nil
}

func (l Logs) write(o Outcome, v record.Variant) error {
	w := l.Other
	if o == FailCallerFilter {
		w = l.CallerFilter
	}
	if w == nil {
		return nil
	}
	_, err := io.WriteString(w, strings.Join([]string{o.String(), v.String()}, "\t")+"\n")
	return errors.Wrap(err, "writing failure log")
}

func cleanup(r *record.Reader) {
	err := r.Close()
	exception.PanicOnErr(err)
}

// CreateLogs opens both failure logs. The returned function closes them.
func CreateLogs(callerFilterFile, otherFile string) (Logs, func()) {
	a := fileio.EasyCreate(callerFilterFile)
	b := fileio.EasyCreate(otherFile)
	return Logs{CallerFilter: a, Other: b}, func() {
		exception.PanicOnErr(a.Close())
		exception.PanicOnErr(b.Close())
	}
}
