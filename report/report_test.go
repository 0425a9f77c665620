package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mjtiv/VADT/dataset"
	"github.com/mjtiv/VADT/filter"
	"github.com/mjtiv/VADT/genotype"
	"github.com/mjtiv/VADT/record"
	"github.com/mjtiv/VADT/tally"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(label genotype.Label, gt string, ref, alt int) genotype.Call {
	return genotype.Call{Label: label, Genotype: gt, Counts: "x", Ref: ref, Alt: alt}
}

func row(pos string, calls ...genotype.Call) dataset.Row {
	return dataset.Row{Fixed: []string{"chr1", pos, ".", "A", "G", "50", "PASS", "."}, Format: dataset.Format, Calls: calls}
}

var samples = []string{"S1", "S2", "S3", "S4"}

var rows = []dataset.Row{
	row("100",
		call(genotype.Biallelic, "0/1", 40, 5),
		call(genotype.Biallelic, "0/1", 20, 20),
		call(genotype.Homozygous, "0/0", 30, 0),
		call(genotype.Homozygous, "1/1", 0, 30)),
	row("200",
		call(genotype.Biallelic, "0/1", 5, 40),
		call(genotype.Biallelic, "0/1", 5, 45),
		call(genotype.Biallelic, "0/1", 2, 48),
		call(genotype.Biallelic, "0/1", 1, 49)),
}

func sig(i, j int) bool {
	c := rows[i].Calls[j]
	return c.Ref != c.Alt
}

func header(t *testing.T) record.Header {
	h, err := record.ParseColumnLine("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\tS2\tS3\tS4")
	require.NoError(t, err)
	return h
}

func TestBin(t *testing.T) {
	assert.Equal(t, 0, Bin(0))
	assert.Equal(t, 0, Bin(0.09))
	assert.Equal(t, 3, Bin(0.3))
	assert.Equal(t, 5, Bin(0.57))
	assert.Equal(t, 9, Bin(0.95))
	assert.Equal(t, 9, Bin(1))
}

func TestWriteBins(t *testing.T) {
	var buf bytes.Buffer
	var b Bins
	b.Add(1, 4)
	b.Add(0.25, 4)
	require.NoError(t, WriteBins(&buf, b, "test bins"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "test bins\n\nBin\tCounts\n0.0 - 0.1\t0\n"))
	assert.Contains(t, out, "0.2 - 0.3\t1\n")
	assert.Contains(t, out, "0.9 - 1.0\t1\n")
	assert.Contains(t, out, "Total number of variants analyzed: 2\n")
	assert.Contains(t, out, "Total number of possible samples per variant: 4\n")
}

func TestAltAlleleFrequency(t *testing.T) {
	// two biallelic, one hom ref and one hom alt: ref 2+2, alt 2+2
	assert.Equal(t, 0.5, AltAlleleFrequency(tally.Counters{Biallelic: 2, Homozygous: 2, HomozygousRef: 1, HomozygousAlt: 1}))
	assert.Equal(t, 0.33, AltAlleleFrequency(tally.Counters{Biallelic: 1, Homozygous: 1, HomozygousRef: 1}))
	assert.Equal(t, 0.0, AltAlleleFrequency(tally.Counters{NonTestable: 3}))
}

func TestWriteVariants(t *testing.T) {
	var buf bytes.Buffer
	tl, err := tally.Count(samples, rows, []int{0, 1}, sig)
	require.NoError(t, err)
	extra := &Extra{Header: "\tMeta", Columns: func(i int) []string { return []string{"v" + rows[i].Pos()} }}
	bins, err := WriteVariants(&buf, header(t), tl, extra)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tAlt_Allele_Freq\t"))
	assert.True(t, strings.HasSuffix(lines[0], "Non-Testable\tMeta"))
	assert.Equal(t, "chr1\t100\t.\tA\tG\t50\tPASS\t.\t0.5\t2\t1\t1\tASE_Breakdown:\t1\t0\t\t2\tHomo_Breakdown\t1\t1\t\t0\tv100", lines[1])
	assert.Equal(t, "chr1\t200\t.\tA\tG\t50\tPASS\t.\t0.5\t4\t0\t4\tASE_Breakdown:\t0\t4\t\t0\tHomo_Breakdown\t0\t0\t\t0\tv200", lines[2])

	// prevalence 1/4 and 4/4
	assert.Equal(t, 1, bins.Prevalence.Counts[2])
	assert.Equal(t, 1, bins.Prevalence.Counts[9])
	assert.Equal(t, 2, bins.AltFreq.Counts[5])
	assert.Equal(t, 2, bins.AltFreq.Total)
}

func TestWriteSamples(t *testing.T) {
	var buf bytes.Buffer
	tl, err := tally.Count(samples, rows, []int{0, 1}, sig)
	require.NoError(t, err)
	require.NoError(t, WriteSamples(&buf, tl, tally.Testable(samples, rows)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "S1\t2\t\t2\t0\t2\tASE_Breakdown:\t1\t1\t\t0\tHomo_Breakdown\t0\t0\t\t0", lines[1])
	assert.Equal(t, "S3\t1\t\t1\t0\t1\tASE_Breakdown:\t0\t1\t\t1\tHomo_Breakdown\t1\t0\t\t0", lines[3])
}

func TestRefBias(t *testing.T) {
	var buf bytes.Buffer
	biases := RefBiases(rows, func(i int) bool { return i == 1 })
	require.Len(t, biases, 2)
	assert.Equal(t, RefBias{Name: "chr1:100", Ref: 60, Alt: 25, Ratio: 60.0 / 85.0}, biases[0])
	assert.Equal(t, 13, biases[1].Ref)
	assert.Equal(t, 182, biases[1].Alt)
	assert.InDelta(t, (60.0/85.0+13.0/195.0)/2, MeanRatio(biases), 1e-12)
	assert.Equal(t, 0.0, MeanRatio(nil))

	require.NoError(t, WriteRefBias(&buf, biases))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Variant_Name\tStatus\tRef_Count\tAlt_Count\tTotal_Count\tRatio", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "chr1:100\tNo_ASE\t60\t25\t85\t0.70588"))
	assert.True(t, strings.HasPrefix(lines[2], "chr1:200\tSig_ASE\t13\t182\t195\t"))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	tl, err := tally.Count(samples, rows, []int{0, 1}, sig)
	require.NoError(t, err)
	tl.Global.TestableVariants = 5
	tl.Global.SigVariants = 2
	stats := filter.Stats{Variants: 9, Samples: 4}
	s := Summary{Test: "meta_analysis", Parameters: []string{"Min_Quality\t20"}, Filter: &stats, Tally: tl, AvgRefRatio: 0.5}
	require.NoError(t, s.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "Statistical test: meta_analysis\n")
	assert.Contains(t, out, "Min_Quality\t20\n")
	assert.Contains(t, out, "Variants_In_File\t9\n")
	assert.Contains(t, out, "Biallelic_Testable_Variants\t5\n")
	assert.Contains(t, out, "Total_Sig_ASE_Variants\t2\n")
	assert.Contains(t, out, "Total_Tests\t8\n")
	assert.Contains(t, out, "Average_Ref_Allele_Ratio\t0.5000\n")
	assert.NotContains(t, out, "INDEL Exclusion Zones")
}

func TestPlots(t *testing.T) {
	var b Bins
	b.Add(0.5, 4)
	b.Add(0.55, 4)
	dir := t.TempDir()
	file := filepath.Join(dir, "bins.png")
	require.NoError(t, PlotBins(b, "bins", "fraction", file))
	_, err := os.Stat(file)
	assert.NoError(t, err)

	file = filepath.Join(dir, "ratios.png")
	require.NoError(t, PlotHistogram([]float64{0.2, 0.5, 0.55}, "ratios", "ref / total", file))
	_, err = os.Stat(file)
	assert.NoError(t, err)

	file = filepath.Join(dir, "empty.png")
	require.NoError(t, PlotHistogram(nil, "empty", "p", file))
	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))

	assert.NotEmpty(t, Sketch(b, "bins"))
}
