// Package genotype describes the per-sample call attached to every testable variant.
package genotype

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Label is the classification assigned to one sample at one variant.
type Label byte

const (
	NoData             Label = iota // no genotype or no counts reported
	HomozygousLowCount              // homozygous call below the read minimum
	Homozygous
	LowReadCount      // heterozygous call below the read minimum
	LowAlleleFraction // minor allele at or below 1% of reads
	Biallelic         // heterozygous call tested for allelic imbalance
)

var labelTokens = []string{"No_Data", "Homo_Low_Count", "Homo", "Low_Read_Count", "Low_Allele_Count", "Biallelic"}

func (l Label) String() string {
	if int(l) < len(labelTokens) {
		return labelTokens[l]
	}
	return "Label(" + strconv.Itoa(int(l)) + ")"
}

// ParseLabel is the inverse of Label.String.
func ParseLabel(s string) (Label, error) {
	for i := range labelTokens {
		if labelTokens[i] == s {
			return Label(i), nil
		}
	}
	return 0, errors.Errorf("unrecognized sample label: %s", s)
}

// Zygosity of a genotype string.
type Zygosity byte

const (
	NoCall Zygosity = iota
	Heterozygous
	HomozygousRef
	HomozygousAlt
	HomozygousOther // homozygous for an allele other than 0 or 1
	Malformed       // not a diploid genotype
)

// Alleles splits a diploid genotype on either the unphased (/) or phased (|) separator.
func Alleles(gt string) (a, b string, ok bool) {
	idx := strings.IndexAny(gt, "/|")
	if idx < 0 {
		return "", "", false
	}
	a, b = gt[:idx], gt[idx+1:]
	if strings.ContainsAny(b, "/|") {
		return "", "", false
	}
	return a, b, true
}

// ZygosityOf reports the zygosity of a genotype string such as 0/1 or 1|1.
func ZygosityOf(gt string) Zygosity {
	if gt == "." {
		return NoCall
	}
	a, b, ok := Alleles(gt)
	switch {
	case !ok:
		return Malformed
	case a == "." && b == ".":
		return NoCall
	case a != b:
		return Heterozygous
	case a == "0":
		return HomozygousRef
	case a == "1":
		return HomozygousAlt
	default:
		return HomozygousOther
	}
}

// IsHomozygous is true for any genotype with two identical, known alleles.
func (z Zygosity) IsHomozygous() bool {
	return z == HomozygousRef || z == HomozygousAlt || z == HomozygousOther
}
