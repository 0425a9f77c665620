package genotype

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NA marks a missing value in a written call.
const NA = "NA"

// Call is the annotated sample cell written to the testable dataset as
// Label:Genotype:Counts:PValue. Ref and Alt are only meaningful when Counts
// holds two comma separated values. PValue is only meaningful for Biallelic calls.
type Call struct {
	Label    Label
	Genotype string
	Counts   string
	Ref      int
	Alt      int
	PValue   float64
}

// HasCounts is true when Ref and Alt were read from a two value counts field.
func (c Call) HasCounts() bool {
	_, _, ok := SplitCounts(c.Counts)
	return ok
}

// Total read depth of a two value counts field.
func (c Call) Total() int {
	return c.Ref + c.Alt
}

func (c Call) String() string {
	s := new(strings.Builder)
	s.WriteString(c.Label.String())
	s.WriteByte(':')
	s.WriteString(c.Genotype)
	s.WriteByte(':')
	s.WriteString(c.Counts)
	s.WriteByte(':')
	if c.Label == Biallelic {
		s.WriteString(FormatFloat(c.PValue))
	} else {
		s.WriteString(NA)
	}
	return s.String()
}

// ParseCall reads a cell written by Call.String. Trailing fields appended by
// downstream steps are ignored.
func ParseCall(cell string) (Call, error) {
	var c Call
	var err error
	fields := strings.Split(cell, ":")
	if len(fields) < 4 {
		return c, errors.Errorf("malformed sample call: %s", cell)
	}
	c.Label, err = ParseLabel(fields[0])
	if err != nil {
		return c, err
	}
	c.Genotype = fields[1]
	c.Counts = fields[2]
	if ref, alt, ok := SplitCounts(c.Counts); ok {
		c.Ref, err = strconv.Atoi(ref)
		if err != nil {
			return c, errors.Wrapf(err, "malformed counts in sample call %s", cell)
		}
		c.Alt, err = strconv.Atoi(alt)
		if err != nil {
			return c, errors.Wrapf(err, "malformed counts in sample call %s", cell)
		}
	}
	if c.Label == Biallelic {
		c.PValue, err = strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return c, errors.Wrapf(err, "malformed p-value in sample call %s", cell)
		}
	} else {
		c.PValue = math.NaN()
	}
	return c, nil
}

// SplitCounts splits a ref,alt counts field. Fields with more than two
// counts return the first two.
func SplitCounts(counts string) (ref, alt string, ok bool) {
	words := strings.Split(counts, ",")
	if len(words) < 2 {
		return "", "", false
	}
	return words[0], words[1], true
}

// FormatFloat writes the shortest representation that reads back to x.
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
