package filter

import (
	"strconv"
	"strings"

	"github.com/mjtiv/VADT/genotype"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/numbers"
)

// lowAlleleFraction is the largest share of reads the minor allele may hold
// before a heterozygous call is considered a sequencing artifact.
const lowAlleleFraction = 0.01

// Classify labels one sample cell of the form GT:AD[:...].
func Classify(cell string, s Settings) (genotype.Call, error) {
	var c genotype.Call
	var err error
	cell = strings.Trim(cell, "\"'")
	if !strings.Contains(cell, ":") {
		return genotype.Call{Label: genotype.NoData, Genotype: cell, Counts: genotype.NA}, nil
	}

	fields := strings.Split(cell, ":")
	c.Genotype = fields[0]
	c.Counts = fields[1]
	zygosity := genotype.ZygosityOf(c.Genotype)
	if zygosity == genotype.NoCall || zygosity == genotype.Malformed {
		c.Label = genotype.NoData
		return c, nil
	}

	switch c.Counts {
	case "", ".", "./.":
		c.Label = genotype.NoData
		return c, nil
	}

	ref, alt, ok := genotype.SplitCounts(c.Counts)
	if !ok {
		// a single count is reported for some homozygous calls
		var depth int
		depth, err = strconv.Atoi(c.Counts)
		if err != nil {
			return c, errors.Wrapf(err, "malformed read count in sample cell %s", cell)
		}
		if depth < s.MinReadCount {
			c.Label = genotype.HomozygousLowCount
		} else {
			c.Label = genotype.Homozygous
		}
		return c, nil
	}

	c.Ref, err = strconv.Atoi(ref)
	if err != nil {
		return c, errors.Wrapf(err, "malformed read count in sample cell %s", cell)
	}
	c.Alt, err = strconv.Atoi(alt)
	if err != nil {
		return c, errors.Wrapf(err, "malformed read count in sample cell %s", cell)
	}
	total := c.Total()

	switch {
	case total < s.MinReadCount && zygosity.IsHomozygous():
		c.Label = genotype.HomozygousLowCount
	case total < s.MinReadCount:
		c.Label = genotype.LowReadCount
	case zygosity == genotype.Heterozygous && lowestNonZero(c.Ref, c.Alt) <= lowAlleleFraction*float64(total):
		c.Label = genotype.LowAlleleFraction
	case zygosity.IsHomozygous():
		c.Label = genotype.Homozygous
	default:
		c.Label = genotype.Biallelic
		c.PValue = BinomTest(c.Alt, total, s.BinomialP)
	}
	return c, nil
}

// lowestNonZero returns the smaller positive count, or 0 when neither is positive.
func lowestNonZero(a, b int) float64 {
	switch {
	case a > 0 && b > 0:
		return float64(numbers.Min(a, b))
	case a > 0:
		return float64(a)
	case b > 0:
		return float64(b)
	}
	return 0
}

// sampleCounters tallies the labels of one variant across samples.
type sampleCounters struct {
	homRef, homAlt, lowRead, lowFreq, noData, testable int
}

func (sc *sampleCounters) add(c genotype.Call) {
	switch c.Label {
	case genotype.NoData:
		sc.noData++
	case genotype.HomozygousLowCount, genotype.LowReadCount:
		sc.lowRead++
	case genotype.LowAlleleFraction:
		sc.lowFreq++
	case genotype.Homozygous:
		switch genotype.ZygosityOf(c.Genotype) {
		case genotype.HomozygousRef:
			sc.homRef++
		case genotype.HomozygousAlt:
			sc.homAlt++
		}
	case genotype.Biallelic:
		sc.testable++
	}
}

// verdict picks the failure reason for a variant with no testable sample.
func (sc sampleCounters) verdict(samples int) Outcome {
	switch {
	case sc.testable > 0:
		return Pass
	case samples == 0:
		return FailNoData
	case sc.homRef == samples:
		return FailAllRefHomozygous
	case sc.homAlt == samples:
		return FailAllAltHomozygous
	case sc.homRef+sc.homAlt == samples:
		return FailComboHomozygous
	case sc.noData == samples:
		return FailNoData
	case sc.lowRead == samples:
		return FailLowReadCount
	case sc.lowFreq == samples:
		return FailLowAlleleFraction
	case sc.homRef+sc.homAlt+sc.lowRead+sc.lowFreq+sc.noData == samples:
		return FailComboFilter
	}
	return FailUnresolved
}

