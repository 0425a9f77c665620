package filter

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/indel"
	"github.com/mjtiv/VADT/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSettings = Settings{MinQuality: 20, MinReadCount: 20, BinomialP: 0.5, IndelHalfWidth: 10}

// exactTwoSided sums the probability of every outcome no more likely than k.
func exactTwoSided(k, n int, p float64) float64 {
	logPmf := func(i int) float64 {
		a, _ := math.Lgamma(float64(n + 1))
		b, _ := math.Lgamma(float64(i + 1))
		c, _ := math.Lgamma(float64(n - i + 1))
		return a - b - c + float64(i)*math.Log(p) + float64(n-i)*math.Log(1-p)
	}
	var sum float64
	limit := logPmf(k) + math.Log(relErr)
	for i := 0; i <= n; i++ {
		if logPmf(i) <= limit {
			sum += math.Exp(logPmf(i))
		}
	}
	return math.Min(1, sum)
}

func TestBinomTest(t *testing.T) {
	assert.Equal(t, 1.0, BinomTest(50, 100, 0.5))
	assert.InDelta(t, 0.109375, BinomTest(2, 10, 0.5), 1e-12)
	assert.InDelta(t, 0.34375, BinomTest(7, 10, 0.5), 1e-12)
	assert.InDelta(t, 0.0388396, BinomTest(0, 10, 0.3), 1e-6)
	assert.Equal(t, 1.0, BinomTest(3, 10, 0.3))

	p := BinomTest(90, 100, 0.5)
	assert.InEpsilon(t, exactTwoSided(90, 100, 0.5), p, 1e-6)
	assert.Less(t, p, 1e-15)
	assert.Equal(t, p, BinomTest(10, 100, 0.5))

	for _, n := range []int{20, 37, 150} {
		for k := 0; k <= n; k += 3 {
			assert.InEpsilon(t, exactTwoSided(k, n, 0.5), BinomTest(k, n, 0.5), 1e-6, "k=%d n=%d", k, n)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		cell   string
		label  genotype.Label
		output string
	}{
		{"./.", genotype.NoData, "No_Data:./.:NA:NA"},
		{"./.:0,0:0", genotype.NoData, "No_Data:./.:0,0:NA"},
		{"0/1:.:0", genotype.NoData, "No_Data:0/1:.:NA"},
		{"0/0:5", genotype.HomozygousLowCount, "Homo_Low_Count:0/0:5:NA"},
		{"1/1:35", genotype.Homozygous, "Homo:1/1:35:NA"},
		{"0/0:10,0", genotype.HomozygousLowCount, "Homo_Low_Count:0/0:10,0:NA"},
		{"0/1:5,10", genotype.LowReadCount, "Low_Read_Count:0/1:5,10:NA"},
		{"0/1:1,199", genotype.LowAlleleFraction, "Low_Allele_Count:0/1:1,199:NA"},
		{"0/1:2,198", genotype.LowAlleleFraction, "Low_Allele_Count:0/1:2,198:NA"},
		{"0/1:0,40", genotype.Biallelic, "Biallelic:0/1:0,40:" + genotype.FormatFloat(BinomTest(40, 40, 0.5))},
		{"1/1:0,40:40", genotype.Homozygous, "Homo:1/1:0,40:NA"},
		{"0|0:40,1", genotype.Homozygous, "Homo:0|0:40,1:NA"},
		{"0/1:10,10", genotype.Biallelic, "Biallelic:0/1:10,10:1"},
		{"\"0|1:12,8:20\"", genotype.Biallelic, "Biallelic:0|1:12,8:" + genotype.FormatFloat(BinomTest(8, 20, 0.5))},
	}
	for _, test := range tests {
		c, err := Classify(test.cell, testSettings)
		require.NoError(t, err, test.cell)
		assert.Equal(t, test.label, c.Label, test.cell)
		assert.Equal(t, test.output, c.String(), test.cell)
	}

	_, err := Classify("0/1:ten,10", testSettings)
	assert.Error(t, err)
	_, err = Classify("0/0:many", testSettings)
	assert.Error(t, err)
}

func TestEmptyHeterozygousCounts(t *testing.T) {
	s := testSettings
	s.MinReadCount = 0
	c, err := Classify("0/1:0,0", s)
	require.NoError(t, err)
	assert.Equal(t, genotype.LowAlleleFraction, c.Label)
}

func TestBiallelicUsesAltAsSuccess(t *testing.T) {
	s := testSettings
	s.BinomialP = 0.3
	c, err := Classify("0/1:30,20", s)
	require.NoError(t, err)
	assert.Equal(t, BinomTest(20, 50, 0.3), c.PValue)
}

func variant(t *testing.T, line string) record.Variant {
	t.Helper()
	v, err := record.ParseLine(line)
	require.NoError(t, err)
	return v
}

func TestApplyGates(t *testing.T) {
	b := indel.NewBuilder(10)
	b.Add(variant(t, "chr1\t500\t.\tAT\tA\t50\tPASS\t.\tGT:AD\t0/1:10,10\t0/1:10,10"))
	f := New(testSettings, b.Index(), 2)

	tests := []struct {
		line     string
		expected Outcome
	}{
		{"chr1\t100\t.\tA\tG\t10\tLowQual\t.\tGT:AD\t0/1:10,10\t0/1:10,10", FailCallerFilter},
		{"chr1\t100\t.\tA\tG\t19.99\tPASS\t.\tGT:AD\t0/1:10,10\t0/1:10,10", FailQuality},
		{"chr1\t100\t.\tA\tG\t.\tPASS\t.\tGT:AD\t0/1:10,10\t0/1:10,10", FailQuality},
		{"chr1\t505\t.\tA\tG\t50\tPASS\t.\tGT:AD\t0/1:10,10\t0/1:10,10", FailIndelZone},
		{"chr1\t100\t.\tA,C\tG\t50\tPASS\t.\tGT:AD\t0/1:10,10\t0/1:10,10", FailMultipleRef},
		{"chr1\t100\t.\tA\tG,T\t50\tPASS\t.\tGT:AD\t0/1:10,10\t0/1:10,10", FailMultipleAlt},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t0/0:30,0\t0/0:25,0", FailAllRefHomozygous},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t1/1:0,30\t1/1:0,25", FailAllAltHomozygous},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t0/0:30,0\t1/1:0,25", FailComboHomozygous},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t./.\t./.:.", FailNoData},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t0/1:3,4\t0/0:5,0", FailLowReadCount},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t0/1:1,199\t0/1:200,1", FailLowAlleleFraction},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t0/1:1,199\t./.", FailComboFilter},
		{"chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD\t2/2:0,40\t2/2:0,40", FailUnresolved},
		{"chr1\t100\t.\tA\tG\t20\tPASS\t.\tGT:AD\t0/1:12,18\t./.", Pass},
	}
	for _, test := range tests {
		row, o, err := f.Apply(variant(t, test.line))
		require.NoError(t, err)
		assert.Equal(t, test.expected, o, test.line)
		if o == Pass {
			require.Len(t, row.Calls, 2)
			assert.Equal(t, genotype.Biallelic, row.Calls[0].Label)
			assert.Equal(t, genotype.NoData, row.Calls[1].Label)
		} else {
			assert.Nil(t, row.Calls)
		}
	}
	assert.Equal(t, len(tests), f.Stats.Variants)
	assert.Equal(t, 1, f.Stats.Count(Pass))
	assert.Equal(t, 2, f.Stats.Count(FailQuality))
	assert.Equal(t, len(tests)-1, f.Stats.Failed())
	assert.NoError(t, f.Stats.Check())
}

func TestApplyWithoutSamples(t *testing.T) {
	f := New(testSettings, nil, 0)
	_, o, err := f.Apply(variant(t, "chr1\t100\t.\tA\tG\t50\tPASS\t.\tGT:AD"))
	require.NoError(t, err)
	assert.Equal(t, FailNoData, o)
}

func TestApplyMalformedQuality(t *testing.T) {
	f := New(testSettings, nil, 1)
	_, _, err := f.Apply(variant(t, "chr1\t100\t.\tA\tG\thigh\tPASS\t.\tGT:AD\t0/1:10,10"))
	assert.Error(t, err)
}

func TestStatsCheck(t *testing.T) {
	var s Stats
	s.add(Pass)
	s.add(FailNoData)
	assert.NoError(t, s.Check())
	s.Variants++
	assert.ErrorIs(t, s.Check(), ErrBucketMismatch)
}

const runInput = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	S1	S2
chr1	100	.	A	G	50	PASS	.	GT:AD	0/1:12,18	0/1:20,20
chr1	150	.	A	G	50	VQSRTranche	.	GT:AD	0/1:12,18	0/1:20,20
chr1	200	.	AT	A	50	PASS	.	GT:AD	0/1:12,18	0/1:20,20
chr1	205	.	C	T	50	PASS	.	GT:AD	0/1:12,18	0/1:20,20
chr2	100	.	C	T	50	PASS	.	GT:AD	0/0:40,0	0/0:30,0
`

func TestRun(t *testing.T) {
	var callerLog, otherLog bytes.Buffer
	input := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(input, []byte(runInput), 0644))

	res, err := Run(input, testSettings, Logs{CallerFilter: &callerLog, Other: &otherLog})
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, res.Header.Samples())
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "chr1:100", res.Rows[0].Name())
	assert.Equal(t, 5, res.Stats.Variants)
	assert.Equal(t, 2, res.Stats.Samples)
	assert.Equal(t, 1, res.Stats.Zones)
	assert.Equal(t, 1, res.Stats.Count(FailCallerFilter))
	assert.Equal(t, 2, res.Stats.Count(FailIndelZone))
	assert.Equal(t, 1, res.Stats.Count(FailAllRefHomozygous))

	callerLines := strings.Split(strings.TrimSpace(callerLog.String()), "\n")
	require.Len(t, callerLines, 2)
	assert.True(t, strings.HasPrefix(callerLines[0], "Failure\t#CHROM"))
	assert.True(t, strings.HasPrefix(callerLines[1], "GATK_Filter\tchr1\t150"))

	otherLines := strings.Split(strings.TrimSpace(otherLog.String()), "\n")
	require.Len(t, otherLines, 4)
	assert.True(t, strings.HasPrefix(otherLines[1], "Indel_Region\tchr1\t200"))
	assert.True(t, strings.HasPrefix(otherLines[2], "Indel_Region\tchr1\t205"))
	assert.True(t, strings.HasPrefix(otherLines[3], "All_Samples_Ref_Homozygous\tchr2\t100"))
}
