package indel

import (
	"io"
	"strconv"
	"strings"

	"github.com/mjtiv/VADT/record"
	"github.com/pkg/errors"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/numbers"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// WriteZones writes one line per zone: its bounds followed by the fixed columns of the variant that produced it.
func WriteZones(w io.Writer, header record.Header, zones []Zone) error {
	var err error
	_, err = io.WriteString(w, "Chromosome\tStart_INDEL_Zone\tStop_INDEL_Zone\t"+strings.Join(header.Fixed(), "\t")+"\n")
	if err != nil {
		return errors.Wrap(err, "writing indel zone header")
	}
	for i := range zones {
		_, err = io.WriteString(w, zones[i].String()+"\t"+strings.Join(zones[i].Variant.Fixed(), "\t")+"\n")
		if err != nil {
			return errors.Wrap(err, "writing indel zones")
		}
	}
	return nil
}

// WriteBed writes the excluded positions of each zone as 0-based half open bed records.
func WriteBed(w io.Writer, zones []Zone) {
	for _, z := range zones {
		if z.End-z.Start < 2 {
			continue
		}
		bed.WriteBed(w, bed.Bed{
			Chrom:             z.Chrom,
			ChromStart:        numbers.Max(z.Start, 0),
			ChromEnd:          z.End - 1,
			Name:              z.Variant.Name(),
			FieldsInitialized: 4,
		})
	}
}

// Chromosomes returns the chromosomes holding at least one zone in sorted order.
func (s Stats) Chromosomes() []string {
	chroms := maps.Keys(s.PerChrom)
	slices.Sort(chroms)
	return chroms
}

// Describe renders Stats for the summary report.
func (s Stats) Describe() []string {
	lines := []string{
		"Total_INDEL_Zones\t" + strconv.Itoa(s.Zones),
		"Total_INDEL_Alleles\t" + strconv.Itoa(s.Indels),
		"Longest_INDEL\t" + strconv.Itoa(s.Longest),
		"Shortest_INDEL\t" + strconv.Itoa(s.Shortest),
		"Average_INDEL_Length\t" + strconv.FormatFloat(s.Mean, 'f', 2, 64),
	}
	for _, c := range s.Chromosomes() {
		lines = append(lines, "INDEL_Zones_"+c+"\t"+strconv.Itoa(s.PerChrom[c]))
	}
	return lines
}
