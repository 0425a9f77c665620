// Package record reads the tab-delimited variant tables consumed by VADT.
// Each data line carries the nine fixed VCF columns followed by one cell per sample.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PassFilter is the FILTER value assigned by the upstream caller to variants passing its own filters.
const PassFilter = "PASS"

// FixedColumns is the number of leading columns preceding the sample cells.
const FixedColumns = 9

// Variant is one data line of the input table.
type Variant struct {
	Chr     string
	Pos     int
	Id      string
	Ref     string
	Alt     string
	Qual    string
	Filter  string
	Info    string
	Format  string
	Samples []string
}

// ParseLine splits a data line into a Variant. Surrounding quotes on any field are removed.
func ParseLine(line string) (Variant, error) {
	var v Variant
	var err error
	words := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(words) < FixedColumns {
		return v, errors.Errorf("malformed record: found %d columns, expected at least %d\n%s", len(words), FixedColumns, line)
	}
	for i := range words {
		words[i] = unquote(words[i])
	}
	v.Chr = words[0]
	v.Pos, err = strconv.Atoi(words[1])
	if err != nil {
		return v, errors.Wrapf(err, "malformed position in record %s", line)
	}
	v.Id = words[2]
	v.Ref = words[3]
	v.Alt = words[4]
	v.Qual = words[5]
	v.Filter = words[6]
	v.Info = words[7]
	v.Format = words[8]
	v.Samples = words[FixedColumns:]
	return v, nil
}

// RefAlleles returns the comma separated forms listed in the REF column.
func (v Variant) RefAlleles() []string {
	return splitAlleles(v.Ref)
}

// AltAlleles returns the comma separated forms listed in the ALT column.
func (v Variant) AltAlleles() []string {
	return splitAlleles(v.Alt)
}

// Quality parses the QUAL column. The second return is false when the score is missing (".").
func (v Variant) Quality() (float64, bool, error) {
	if v.Qual == "." || v.Qual == "" {
		return 0, false, nil
	}
	q, err := strconv.ParseFloat(v.Qual, 64)
	if err != nil {
		return 0, false, errors.Wrapf(err, "malformed quality score at %s", v.Name())
	}
	return q, true, nil
}

// Fixed returns the first eight columns (CHROM through INFO) as written in the input.
func (v Variant) Fixed() []string {
	return []string{v.Chr, strconv.Itoa(v.Pos), v.Id, v.Ref, v.Alt, v.Qual, v.Filter, v.Info}
}

// Name is the chr:pos identifier used in reports.
func (v Variant) Name() string {
	return fmt.Sprintf("%s:%d", v.Chr, v.Pos)
}

func (v Variant) String() string {
	s := new(strings.Builder)
	s.WriteString(strings.Join(v.Fixed(), "\t"))
	s.WriteByte('\t')
	s.WriteString(v.Format)
	for i := range v.Samples {
		s.WriteByte('\t')
		s.WriteString(v.Samples[i])
	}
	return s.String()
}

func splitAlleles(s string) []string {
	return strings.Split(s, ",")
}

func unquote(s string) string {
	return strings.Trim(s, "\"'")
}
