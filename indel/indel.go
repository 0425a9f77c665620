// Package indel identifies the regions around insertions and deletions where
// read counts at nearby single nucleotide variants are unreliable.
package indel

import (
	"strconv"

	"github.com/mjtiv/VADT/record"
	"github.com/montanaflynn/stats"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/interval"
	"github.com/vertgenlab/gonomics/numbers"
)

// SpanningDeletion is the alternate allele used for an upstream deletion overlapping the site.
// Its length is recorded as -1.
const SpanningDeletion = "*"

// Zone is the window (Start, End) around one indel-bearing variant.
// Only positions strictly between Start and End are excluded.
type Zone struct {
	Chrom   string
	Start   int
	End     int
	Variant record.Variant
}

// Contains reports whether pos on chrom falls strictly inside the zone.
func (z Zone) Contains(chrom string, pos int) bool {
	return z.Chrom == chrom && z.Start < pos && pos < z.End
}

// Stats summarizes the alleles that produced zones.
type Stats struct {
	Zones    int
	Indels   int
	Longest  int
	Shortest int
	Mean     float64
	PerChrom map[string]int
}

// Builder accumulates zones from a stream of variants.
type Builder struct {
	halfWidth int
	zones     []Zone
	lengths   []float64
}

// NewBuilder returns a Builder that pads each indel by halfWidth on both sides.
func NewBuilder(halfWidth int) *Builder {
	return &Builder{halfWidth: halfWidth}
}

// Add records a zone for v when it passed the upstream caller filters and
// carries an allele of length other than one. The return reports whether a
// zone was created.
func (b *Builder) Add(v record.Variant) bool {
	if v.Filter != record.PassFilter {
		return false
	}
	var found bool
	for _, a := range v.RefAlleles() {
		found = b.addAllele(a) || found
	}
	for _, a := range v.AltAlleles() {
		found = b.addAllele(a) || found
	}
	if found {
		b.zones = append(b.zones, Zone{Chrom: v.Chr, Start: v.Pos - b.halfWidth, End: v.Pos + b.halfWidth, Variant: v})
	}
	return found
}

func (b *Builder) addAllele(a string) bool {
	switch {
	case a == SpanningDeletion:
		b.lengths = append(b.lengths, -1)
		return true
	case len(a) > 1:
		b.lengths = append(b.lengths, float64(len(a)))
		return true
	default:
		return false
	}
}

// Index freezes the zones collected so far into a queryable Index.
func (b *Builder) Index() *Index {
	idx := &Index{Zones: b.zones}
	idx.Stats = summarize(b.zones, b.lengths)

	var intervals []interval.Interval
	for _, z := range b.zones {
		// interior positions start..end exclusive, as a 0-based half open bed
		if z.End-z.Start < 2 {
			continue
		}
		intervals = append(intervals, bed.Bed{
			Chrom:             z.Chrom,
			ChromStart:        numbers.Max(z.Start, 0),
			ChromEnd:          z.End - 1,
			Name:              z.Variant.Name(),
			FieldsInitialized: 4,
		})
	}
	if len(intervals) > 0 {
		idx.tree = interval.BuildTree(intervals)
	}
	return idx
}

func summarize(zones []Zone, lengths []float64) Stats {
	s := Stats{Zones: len(zones), Indels: len(lengths), PerChrom: make(map[string]int)}
	for i := range zones {
		s.PerChrom[zones[i].Chrom]++
	}
	if len(lengths) == 0 {
		return s
	}
	// errors are only returned for empty input
	longest, _ := stats.Max(lengths)
	shortest, _ := stats.Min(lengths)
	s.Mean, _ = stats.Mean(lengths)
	s.Longest = int(longest)
	s.Shortest = int(shortest)
	return s
}

// Index answers membership queries against a set of zones.
type Index struct {
	Zones []Zone
	Stats Stats
	tree  map[string]*interval.IntervalNode
}

// Hits returns the number of zones whose interior contains pos.
func (x *Index) Hits(chrom string, pos int) int {
	if x == nil || x.tree == nil || pos < 1 {
		return 0
	}
	var hits int
	q := bed.Bed{Chrom: chrom, ChromStart: pos - 1, ChromEnd: pos, FieldsInitialized: 3}
	for _, o := range interval.Query(x.tree, q, "any") {
		b := o.(bed.Bed)
		if b.ChromStart < pos && pos <= b.ChromEnd {
			hits++
		}
	}
	return hits
}

// Excludes reports whether pos on chrom lies inside any zone.
func (x *Index) Excludes(chrom string, pos int) bool {
	return x.Hits(chrom, pos) > 0
}

func (z Zone) String() string {
	return z.Chrom + "\t" + strconv.Itoa(z.Start) + "\t" + strconv.Itoa(z.End)
}
