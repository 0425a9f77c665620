package genotype

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZygosityOf(t *testing.T) {
	tests := []struct {
		gt       string
		expected Zygosity
	}{
		{"0/1", Heterozygous},
		{"1|0", Heterozygous},
		{"0/0", HomozygousRef},
		{"0|0", HomozygousRef},
		{"1/1", HomozygousAlt},
		{"2/2", HomozygousOther},
		{"./.", NoCall},
		{".", NoCall},
		{"./1", Heterozygous},
		{"1", Malformed},
		{"0/1/1", Malformed},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, ZygosityOf(test.gt), test.gt)
	}
}

func TestLabelTokens(t *testing.T) {
	for l := NoData; l <= Biallelic; l++ {
		parsed, err := ParseLabel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
	_, err := ParseLabel("Biallelic_ish")
	assert.Error(t, err)
}

func TestCallString(t *testing.T) {
	c := Call{Label: Biallelic, Genotype: "0/1", Counts: "10,90", Ref: 10, Alt: 90, PValue: 3.0632e-17}
	assert.Equal(t, "Biallelic:0/1:10,90:3.0632e-17", c.String())

	c = Call{Label: NoData, Genotype: "./.", Counts: NA}
	assert.Equal(t, "No_Data:./.:NA:NA", c.String())
}

func TestParseCall(t *testing.T) {
	c, err := ParseCall("Biallelic:0/1:12,18:0.36159:Pass")
	require.NoError(t, err)
	assert.Equal(t, Biallelic, c.Label)
	assert.Equal(t, 12, c.Ref)
	assert.Equal(t, 18, c.Alt)
	assert.Equal(t, 30, c.Total())
	assert.InDelta(t, 0.36159, c.PValue, 1e-12)

	c, err = ParseCall("Homo:1/1:35:NA")
	require.NoError(t, err)
	assert.Equal(t, Homozygous, c.Label)
	assert.False(t, c.HasCounts())
	assert.True(t, math.IsNaN(c.PValue))

	_, err = ParseCall("Biallelic:0/1")
	assert.Error(t, err)
	_, err = ParseCall("Biallelic:0/1:a,b:0.5")
	assert.Error(t, err)
}
