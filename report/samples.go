package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mjtiv/VADT/tally"
	"github.com/pkg/errors"
)

const sampleHeader = "Sample\tTestableFile_Biallelic_Testable\t\tSigResultsFile_Biallelic_Testable\tBiallelic_No_ASE\tSig_ASE\t\t" +
	"Sig_ASE_Ref\tSig_ASE_Alt\t\tHomo_Passing\t\tHomo_Ref\tHomo_Alt\t\tNon-Testable\n"

// WriteSamples writes one line per sample. testable holds the biallelic
// count of each sample over the whole testable dataset.
func WriteSamples(w io.Writer, t *tally.Tally, testable []int) error {
	s := new(strings.Builder)
	s.WriteString(sampleHeader)
	for j, name := range t.Samples {
		c := t.PerSample[j]
		fmt.Fprintf(s, "%s\t%d\t\t%d\t%d\t%d\tASE_Breakdown:\t%d\t%d\t\t%d\tHomo_Breakdown\t%d\t%d\t\t%d\n",
			name, testable[j], c.Biallelic, c.NoASE, c.SigASE, c.SigASERef, c.SigASEAlt,
			c.Homozygous, c.HomozygousRef, c.HomozygousAlt, c.NonTestable)
	}
	_, err := io.WriteString(w, s.String())
	return errors.Wrap(err, "writing sample report")
}
