package record

import (
	"strings"

	"github.com/pkg/errors"
)

const columnLinePrefix = "#CHROM"

// Header holds the metadata lines and the column line of a variant table.
type Header struct {
	Meta    []string
	Columns []string
}

// ParseColumnLine reads the #CHROM line.
func ParseColumnLine(line string) (Header, error) {
	var h Header
	line = unquote(strings.TrimRight(line, "\r\n"))
	if !strings.HasPrefix(line, columnLinePrefix) {
		return h, errors.Errorf("expected column line starting with %s, found: %s", columnLinePrefix, line)
	}
	h.Columns = strings.Split(line, "\t")
	for i := range h.Columns {
		h.Columns[i] = unquote(h.Columns[i])
	}
	if len(h.Columns) < FixedColumns {
		return h, errors.Errorf("column line has %d columns, expected at least %d", len(h.Columns), FixedColumns)
	}
	return h, nil
}

// Samples returns the sample names in column order.
func (h Header) Samples() []string {
	if len(h.Columns) <= FixedColumns {
		return nil
	}
	return h.Columns[FixedColumns:]
}

// Fixed returns the names of the first eight columns.
func (h Header) Fixed() []string {
	return h.Columns[:FixedColumns-1]
}

// String returns the column line.
func (h Header) String() string {
	return strings.Join(h.Columns, "\t")
}

func isHeaderLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \"'"), "#")
}
