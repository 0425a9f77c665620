package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mjtiv/VADT/fdr"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/record"
	"github.com/mjtiv/VADT/tally"
	"github.com/pkg/errors"
)

const variantHeader = "Alt_Allele_Freq\tBiallelic_Testable\tBiallelic_No_ASE\tSig_ASE\t\tSig_ASE_Ref\tSig_ASE_Alt\t" +
	"\tHomo_Passing\t\tHomo_Ref\tHomo_Alt\t\tNon-Testable"

// AltAlleleFrequency estimates the alternate allele frequency of a variant
// from its calls, counting one copy of each allele per biallelic sample and
// two copies per homozygous sample.
func AltAlleleFrequency(c tally.Counters) float64 {
	ref := c.Biallelic + 2*c.HomozygousRef
	alt := c.Biallelic + 2*c.HomozygousAlt
	if ref+alt == 0 {
		return 0
	}
	return fdr.Round(float64(alt)/float64(ref+alt), 2)
}

// Prevalence is the share of samples with a significant call.
func Prevalence(c tally.Counters) float64 {
	if c.Cells() == 0 {
		return 0
	}
	return float64(c.SigASE) / float64(c.Cells())
}

// VariantBins holds the distributions written alongside the variant report.
type VariantBins struct {
	Prevalence Bins
	AltFreq    Bins
}

// Extra appends engine specific columns to the variant report.
type Extra struct {
	Header  string
	Columns func(index int) []string // index is the dataset position of the variant
}

// WriteVariants writes one line per tallied variant and returns its frequency bins.
func WriteVariants(w io.Writer, header record.Header, t *tally.Tally, extra *Extra) (VariantBins, error) {
	var bins VariantBins
	var freq float64
	s := new(strings.Builder)
	s.WriteString(strings.Join(header.Fixed(), "\t") + "\t" + variantHeader)
	if extra != nil {
		s.WriteString(extra.Header)
	}
	s.WriteByte('\n')
	for k, row := range t.Variants {
		c := t.PerVariant[k]
		freq = AltAlleleFrequency(c)
		bins.Prevalence.Add(Prevalence(c), c.Cells())
		bins.AltFreq.Add(freq, c.Cells())
		fmt.Fprintf(s, "%s\t%s\t%d\t%d\t%d\tASE_Breakdown:\t%d\t%d\t\t%d\tHomo_Breakdown\t%d\t%d\t\t%d",
			row.Key(), genotype.FormatFloat(freq), c.Biallelic, c.NoASE, c.SigASE, c.SigASERef, c.SigASEAlt,
			c.Homozygous, c.HomozygousRef, c.HomozygousAlt, c.NonTestable)
		if extra != nil {
			s.WriteString("\t" + strings.Join(extra.Columns(t.Index[k]), "\t"))
		}
		s.WriteByte('\n')
	}
	_, err := io.WriteString(w, s.String())
	return bins, errors.Wrap(err, "writing variant report")
}

const (
	PrevalenceDescription = "Prevalence of an ASE Sample Among ALL Samples for a Variant (freq binning)"
	AltFreqDescription    = "Binning of Overall Variant alternative allele frequency which Has At Least One ASE Hit"
)
