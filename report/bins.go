package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// NumBins is the number of equal width bins over [0, 1].
const NumBins = 10

// Bins counts fractions in ten equal width bins.
type Bins struct {
	Counts      [NumBins]int
	Total       int
	SampleCount int // samples per variant at the last addition
}

// Bin returns the bin of fraction x. A fraction of exactly one falls in the last bin.
func Bin(x float64) int {
	b := int(x * NumBins)
	switch {
	case b >= NumBins:
		return NumBins - 1
	case b < 0:
		return 0
	}
	return b
}

// Add records fraction x for a variant with samples samples.
func (b *Bins) Add(x float64, samples int) {
	b.Counts[Bin(x)]++
	b.Total++
	b.SampleCount = samples
}

// Labels names each bin by its bounds.
func Labels() []string {
	answer := make([]string, NumBins)
	for i := range answer {
		answer[i] = fmt.Sprintf("%.1f - %.1f", float64(i)/NumBins, float64(i+1)/NumBins)
	}
	return answer
}

// WriteBins writes the bin table under description.
func WriteBins(w io.Writer, b Bins, description string) error {
	s := new(strings.Builder)
	s.WriteString(description + "\n\nBin\tCounts\n")
	for i, label := range Labels() {
		fmt.Fprintf(s, "%s\t%d\n", label, b.Counts[i])
	}
	fmt.Fprintf(s, "\n\nTotal number of variants analyzed: %d\n", b.Total)
	fmt.Fprintf(s, "Total number of possible samples per variant: %d\n", b.SampleCount)
	_, err := io.WriteString(w, s.String())
	return errors.Wrap(err, "writing frequency bins")
}
