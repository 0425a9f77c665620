package meta

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func biallelic(p float64) genotype.Call {
	return genotype.Call{Label: genotype.Biallelic, Genotype: "0/1", Counts: "10,10", Ref: 10, Alt: 10, PValue: p}
}

var noData = genotype.Call{Label: genotype.NoData, Genotype: "./.", Counts: genotype.NA}

func row(pos string, calls ...genotype.Call) dataset.Row {
	return dataset.Row{Fixed: []string{"chr1", pos, ".", "A", "G", "50", "PASS", "."}, Format: dataset.Format, Calls: calls}
}

func TestFisher(t *testing.T) {
	stat, df, p := Fisher([]float64{0.5, 0.5})
	assert.InDelta(t, 2.772589, stat, 1e-6)
	assert.Equal(t, 4, df)
	// chi-square survival with four degrees of freedom is exp(-x/2)(1+x/2)
	assert.InDelta(t, math.Exp(-stat/2)*(1+stat/2), p, 1e-12)
	assert.InDelta(t, 0.5965736, p, 1e-7)

	stat, df, p = Fisher([]float64{1})
	assert.Equal(t, 0.0, stat)
	assert.Equal(t, 2, df)
	assert.Equal(t, 1.0, p)

	stat, _, p = Fisher([]float64{0, 0.3})
	assert.True(t, math.IsInf(stat, 1))
	assert.Equal(t, 0.0, p)
}

func TestAnalyze(t *testing.T) {
	samples := []string{"S1", "S2", "S3"}
	rows := []dataset.Row{
		row("100", biallelic(1e-8), biallelic(1e-6), noData),
		row("200", biallelic(0.5), noData, biallelic(0.5)),
		row("300", biallelic(0.5), noData, biallelic(0.5)),
	}
	res, err := Analyze(samples, rows, 0.05)
	require.NoError(t, err)
	require.Len(t, res.Variants, 3)

	v := res.Variants[0]
	assert.Equal(t, 3, v.Samples)
	assert.Equal(t, []Analyzed{{"S1", 1e-8}, {"S2", 1e-6}}, v.Analyzed)
	assert.True(t, v.Significant)
	assert.Equal(t, "yes", v.Verdict())

	// identical p-values collapse to the same q-value
	assert.Equal(t, 0.596573590280, res.Variants[1].PValue)
	assert.Equal(t, res.Variants[1].QValue, res.Variants[2].QValue)
	assert.False(t, res.Variants[1].Significant)

	sig, notSig := res.Split()
	assert.Equal(t, []int{0}, sig)
	assert.Equal(t, []int{1, 2}, notSig)

	hit := res.SampleHits(rows, 1e-7)
	assert.True(t, hit(0, 0))
	assert.False(t, hit(0, 1))
	assert.False(t, hit(0, 2))
	assert.False(t, hit(1, 0))
}

func TestAnalyzeRejectsUntestable(t *testing.T) {
	_, err := Analyze([]string{"S1"}, []dataset.Row{row("100", noData)}, 0.05)
	assert.Error(t, err)
	_, err = Analyze([]string{"S1", "S2"}, []dataset.Row{row("100", biallelic(0.1))}, 0.05)
	assert.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	header, err := record.ParseColumnLine("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2")
	require.NoError(t, err)
	rows := []dataset.Row{row("100", biallelic(0.5), biallelic(0.5))}
	res, err := Analyze(header.Samples(), rows, 0.05)
	require.NoError(t, err)
	require.NoError(t, res.WriteResults(&buf, header, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tTotal_Samples\tAnalyzed_Values\tBi-Allelic_Samples\t"+
		"chi-square_value\tDegrees_of_Freedom(2n)\tMeta_p-value\tBH_Adj_pvalue\tSignificant", lines[0])
	words := strings.Split(lines[1], "\t")
	require.Len(t, words, 15)
	assert.Equal(t, []string{"chr1", "100", ".", "A", "G", "50", "PASS", "2", "S1:0.5, S2:0.5", "2"}, words[:10])
	assert.Equal(t, "4", words[11])
	assert.Equal(t, "0.596573590280", words[12])
	assert.Equal(t, "0.59657359", words[13])
	assert.Equal(t, "no", words[14])
	// header.Columns must not be modified by the write
	assert.Equal(t, "FORMAT", header.Columns[8])
}
