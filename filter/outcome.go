package filter

import (
	"strconv"

	"github.com/pkg/errors"
)

// Outcome is the single bucket every input variant is assigned to.
type Outcome byte

const (
	Pass Outcome = iota
	FailCallerFilter
	FailQuality
	FailIndelZone
	FailMultipleRef
	FailMultipleAlt
	FailAllRefHomozygous
	FailAllAltHomozygous
	FailComboHomozygous
	FailNoData
	FailLowReadCount
	FailLowAlleleFraction
	FailComboFilter
	FailUnresolved // no testable sample but sample labels do not explain why
	numOutcomes
)

var outcomeTokens = [numOutcomes]string{
	"Pass",
	"GATK_Filter",
	"Qual_Score_Filter",
	"Indel_Region",
	"Multiple_Ref_Alleles",
	"To_Many_Alt_Alleles",
	"All_Samples_Ref_Homozygous",
	"All_Samples_Alt_Homozygous",
	"All_Samples_Combo_Homozygous",
	"No_Genotype_Value",
	"Samples_Low_Read_Count",
	"Samples_Low_Freq",
	"Sample_Combo_Filter",
	"Unresolved_Genotypes",
}

var outcomeDescriptions = [numOutcomes]string{
	"Passing_Variants",
	"Failed_GATK_Filter",
	"Failed_Quality_Score",
	"SNPs_in_INDEL_Zones",
	"Ref_Allele_Multiple_Forms",
	"Alt_Allele_Multiple_Forms",
	"All_Ref_Homozygous_Variants",
	"All_Alt_Homozygous_Variants",
	"Combo_Homozygous_Variants",
	"No_Genotype_Values",
	"Low_Read_Count_Variants",
	"Low_Allele_Frequency_Variants",
	"Combo_Filter_Failures",
	"Unresolved_Genotype_Variants",
}

// String returns the token written to the failure logs.
func (o Outcome) String() string {
	if o < numOutcomes {
		return outcomeTokens[o]
	}
	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// Describe returns the row label used in the summary report.
func (o Outcome) Describe() string {
	return outcomeDescriptions[o]
}

// Outcomes lists every outcome in gate order.
func Outcomes() []Outcome {
	answer := make([]Outcome, numOutcomes)
	for i := range answer {
		answer[i] = Outcome(i)
	}
	return answer
}

// ErrBucketMismatch is returned by Stats.Check when the buckets do not account for every variant.
var ErrBucketMismatch = errors.New("filter buckets do not sum to the number of variants")

// Stats counts the variants and samples seen while filtering.
type Stats struct {
	Variants int
	Samples  int
	Zones    int
	counts   [numOutcomes]int
}

func (s *Stats) add(o Outcome) {
	s.Variants++
	s.counts[o]++
}

// Count returns the number of variants assigned to o.
func (s Stats) Count(o Outcome) int {
	return s.counts[o]
}

// Failed is the number of variants that did not pass.
func (s Stats) Failed() int {
	return s.Variants - s.counts[Pass]
}

// Check verifies that every variant landed in exactly one bucket.
func (s Stats) Check() error {
	var sum int
	for _, c := range s.counts {
		sum += c
	}
	if sum != s.Variants {
		return errors.Wrapf(ErrBucketMismatch, "%d bucketed, %d variants", sum, s.Variants)
	}
	return nil
}

// Describe renders the stats for the summary report.
func (s Stats) Describe() []string {
	answer := []string{
		"Variants_In_File\t" + strconv.Itoa(s.Variants),
		"Samples_In_File\t" + strconv.Itoa(s.Samples),
		"INDEL_Exclusion_Zones\t" + strconv.Itoa(s.Zones),
	}
	for _, o := range Outcomes() {
		answer = append(answer, o.Describe()+"\t"+strconv.Itoa(s.counts[o]))
	}
	return answer
}
