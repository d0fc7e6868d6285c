package keyword

import (
	"math"
	"sort"
)

const (
	volumeCap         = 10.0
	volumeWeight      = 0.4
	difficultyWeight  = 0.3
	opportunityWeight = 0.3
)

// PriorityScore blends capped volume, inverse difficulty and opportunity into one
// ranking value. A difficulty of zero counts as the easiest possible keyword.
func PriorityScore(r Record) float64 {
	volumeFactor := math.Min(float64(r.Volume)/1000, volumeCap)

	difficultyFactor := 1.0
	if r.Difficulty > 0 {
		difficultyFactor = 1 / float64(r.Difficulty)
	}

	opportunityFactor := float64(r.Opportunity) / 100

	return (volumeFactor*volumeWeight +
		difficultyFactor*difficultyWeight +
		opportunityFactor*opportunityWeight) * 100
}

// TopN returns at most limit records ordered by descending priority score. Ties keep
// their input order. The input slice is left untouched.
func TopN(records []Record, limit int) []Record {
	if limit <= 0 || len(records) == 0 {
		return []Record{}
	}

	ranked := make([]Scored, len(records))
	for i, r := range records {
		ranked[i] = Scored{Record: r, Priority: PriorityScore(r)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]Record, len(ranked))
	for i, s := range ranked {
		out[i] = s.Record
	}
	return out
}

// Score attaches priority scores to records without reordering them.
func Score(records []Record) []Scored {
	out := make([]Scored, len(records))
	for i, r := range records {
		out[i] = Scored{Record: r, Priority: PriorityScore(r)}
	}
	return out
}
