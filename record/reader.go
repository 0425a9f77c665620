package record

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

// Reader streams variants from a table on disk. Gzipped input is handled by fileio.
type Reader struct {
	Header  Header
	file    *fileio.EasyReader
	pending string
	hasNext bool
	line    int
}

// Open reads the header of filename and positions the Reader on the first data line.
func Open(filename string) (*Reader, error) {
	var line string
	var done bool
	var err error
	r := &Reader{file: fileio.EasyOpen(filename)}
	for line, done = fileio.EasyNextLine(r.file); !done; line, done = fileio.EasyNextLine(r.file) {
		r.line++
		switch {
		case strings.TrimSpace(line) == "":
			continue
		case strings.HasPrefix(unquote(line), columnLinePrefix):
			meta := r.Header.Meta
			r.Header, err = ParseColumnLine(line)
			if err != nil {
				r.file.Close()
				return nil, errors.Wrapf(err, "%s line %d", filename, r.line)
			}
			r.Header.Meta = meta
		case isHeaderLine(line):
			r.Header.Meta = append(r.Header.Meta, line)
		default:
			if r.Header.Columns == nil {
				r.file.Close()
				return nil, errors.Errorf("%s: data found on line %d before the %s column line", filename, r.line, columnLinePrefix)
			}
			r.pending = line
			r.hasNext = true
			return r, nil
		}
	}
	if r.Header.Columns == nil {
		r.file.Close()
		return nil, errors.Errorf("%s: missing %s column line", filename, columnLinePrefix)
	}
	return r, nil
}

// Next returns the next variant. The bool is false once the input is exhausted.
func (r *Reader) Next() (Variant, bool, error) {
	var line string
	var done bool
	if r.hasNext {
		line = r.pending
		r.hasNext = false
	} else {
		for {
			line, done = fileio.EasyNextLine(r.file)
			if done {
				return Variant{}, false, nil
			}
			r.line++
			if strings.TrimSpace(line) != "" && !isHeaderLine(line) {
				break
			}
		}
	}
	v, err := ParseLine(line)
	if err != nil {
		return v, false, errors.Wrapf(err, "line %d", r.line)
	}
	if len(v.Samples) != len(r.Header.Samples()) {
		return v, false, errors.Errorf("line %d: %d sample cells for %d sample columns", r.line, len(v.Samples), len(r.Header.Samples()))
	}
	return v, true, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadAll reads every variant in filename into memory.
func ReadAll(filename string) (Header, []Variant, error) {
	var answer []Variant
	r, err := Open(filename)
	if err != nil {
		return Header{}, nil, err
	}
	defer cleanup(r)
	for v, ok, err := r.Next(); ok || err != nil; v, ok, err = r.Next() {
		if err != nil {
			return r.Header, nil, err
		}
		answer = append(answer, v)
	}
	return r.Header, answer, nil
}

func cleanup(r *Reader) {
	err := r.Close()
	exception.PanicOnErr(err)
}
