// Package report renders the human readable outputs of a VADT run: the
// summary, sample and variant reports, frequency bins, reference bias data
// and optional plots.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mjtiv/VADT/filter"
	"github.com/mjtiv/VADT/indel"
	"github.com/mjtiv/VADT/tally"
	"github.com/pkg/errors"
)

// Summary collects everything written to the summary report of one engine.
// Filter and Indel are nil when the engine ran on an existing testable dataset.
type Summary struct {
	Test        string
	Parameters  []string
	Filter      *filter.Stats
	Indel       *indel.Stats
	Tally       *tally.Tally
	AvgRefRatio float64
}

func banner(s *strings.Builder, title string) {
	line := strings.Repeat("#", 70)
	fmt.Fprintf(s, "\n%s\n%s\n%s\n\n", line, center(title, len(line)), line)
}

func center(title string, width int) string {
	title = " " + title + " "
	if len(title) >= width {
		return title
	}
	left := (width - len(title)) / 2
	return strings.Repeat("#", left) + title + strings.Repeat("#", width-left-len(title))
}

// Lines renders the global results.
func (s Summary) Lines() []string {
	g := s.Tally.Global
	return []string{
		fmt.Sprintf("Biallelic_Testable_Variants\t%d", g.TestableVariants),
		fmt.Sprintf("Total_Sig_ASE_Variants\t%d", g.SigVariants),
		fmt.Sprintf("Total_Tests\t%d", g.Tests),
		fmt.Sprintf("Total_Biallelic_Samples\t%d", g.Biallelic),
		fmt.Sprintf("Total_Sig_Biallelic_Samples\t%d", g.SigASE),
		fmt.Sprintf("Total_Sig_ASE_Ref\t%d", g.SigASERef),
		fmt.Sprintf("Total_Sig_ASE_Alt\t%d", g.SigASEAlt),
		fmt.Sprintf("Total_Biallelic_No_ASE\t%d", g.NoASE),
		fmt.Sprintf("Total_Passing_Homozygous\t%d", g.Homozygous),
		fmt.Sprintf("Total_Passing_Homozygous_Ref\t%d", g.HomozygousRef),
		fmt.Sprintf("Total_Passing_Homozygous_Alt\t%d", g.HomozygousAlt),
		fmt.Sprintf("Total_Non_Testable\t%d", g.NonTestable),
		fmt.Sprintf("Average_Ref_Allele_Ratio\t%.4f", s.AvgRefRatio),
	}
}

// Write renders the summary report.
func (s Summary) Write(w io.Writer) error {
	b := new(strings.Builder)
	b.WriteString("Log Report of Statistical Analysis Performed\n\n")
	b.WriteString("Statistical test: " + s.Test + "\n")

	banner(b, "USER PARAMETER SETTINGS")
	writeLines(b, s.Parameters)

	if s.Filter != nil {
		banner(b, "Global Filtering of Data for ASE")
		writeLines(b, s.Filter.Describe())
	}
	if s.Indel != nil {
		banner(b, "INDEL Exclusion Zones")
		writeLines(b, s.Indel.Describe())
	}

	banner(b, "Results")
	writeLines(b, s.Lines())

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing summary report")
}

func writeLines(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
}
