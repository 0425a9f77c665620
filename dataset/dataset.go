// Package dataset holds the testable variants produced by filtering, with
// one annotated genotype.Call per sample.
package dataset

import (
	"io"
	"strings"

	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/record"
	"github.com/pkg/errors"
)

// Format is written in the FORMAT column of every testable variant.
const Format = "Verdict:Genotype:Counts:Binomial_P_value"

// Row is one testable variant.
type Row struct {
	Fixed  []string // CHROM through INFO
	Format string
	Calls  []genotype.Call
}

func (r Row) Chr() string { return r.Fixed[0] }
func (r Row) Pos() string { return r.Fixed[1] }
func (r Row) Ref() string { return r.Fixed[3] }
func (r Row) Alt() string { return r.Fixed[4] }

// Name is the chr:pos identifier used in reports.
func (r Row) Name() string {
	return r.Chr() + ":" + r.Pos()
}

// Key uniquely identifies the variant by its fixed columns.
func (r Row) Key() string {
	return strings.Join(r.Fixed, "\t")
}

// Biallelic returns the sample indexes labeled Biallelic.
func (r Row) Biallelic() []int {
	var answer []int
	for i := range r.Calls {
		if r.Calls[i].Label == genotype.Biallelic {
			answer = append(answer, i)
		}
	}
	return answer
}

// Line renders the row with a custom FORMAT value and cells.
func (r Row) Line(format string, cells []string) string {
	s := new(strings.Builder)
	s.WriteString(strings.Join(r.Fixed, "\t"))
	s.WriteByte('\t')
	s.WriteString(format)
	for i := range cells {
		s.WriteByte('\t')
		s.WriteString(cells[i])
	}
	return s.String()
}

func (r Row) String() string {
	cells := make([]string, len(r.Calls))
	for i := range r.Calls {
		cells[i] = r.Calls[i].String()
	}
	return r.Line(r.Format, cells)
}

// FromVariant reads a row of a testable dataset written by Write.
func FromVariant(v record.Variant) (Row, error) {
	var err error
	r := Row{Fixed: v.Fixed(), Format: v.Format, Calls: make([]genotype.Call, len(v.Samples))}
	for i := range v.Samples {
		r.Calls[i], err = genotype.ParseCall(v.Samples[i])
		if err != nil {
			return r, errors.Wrapf(err, "variant %s", v.Name())
		}
	}
	return r, nil
}

// Read loads a testable dataset from disk.
func Read(filename string) (record.Header, []Row, error) {
	var rows []Row
	var row Row
	header, variants, err := record.ReadAll(filename)
	if err != nil {
		return header, nil, err
	}
	for i := range variants {
		row, err = FromVariant(variants[i])
		if err != nil {
			return header, nil, errors.Wrap(err, filename)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// Write emits the column line followed by each row.
func Write(w io.Writer, header record.Header, rows []Row) error {
	_, err := io.WriteString(w, header.String()+"\n")
	if err != nil {
		return errors.Wrap(err, "writing dataset header")
	}
	for i := range rows {
		_, err = io.WriteString(w, rows[i].String()+"\n")
		if err != nil {
			return errors.Wrap(err, "writing dataset")
		}
	}
	return nil
}
