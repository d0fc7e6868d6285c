package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityScore(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   float64
	}{
		{
			name:   "zero difficulty counts as easiest",
			record: Record{Keyword: "a", Volume: 0, Difficulty: 0, Opportunity: 0},
			want:   30,
		},
		{
			name:   "volume capped at ten thousand",
			record: Record{Keyword: "b", Volume: 1_000_000, Difficulty: 0, Opportunity: 0},
			want:   (10*0.4 + 0.3) * 100,
		},
		{
			name:   "all factors",
			record: Record{Keyword: "c", Volume: 2000, Difficulty: 4, Opportunity: 50},
			want:   (2*0.4 + 0.25*0.3 + 0.5*0.3) * 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PriorityScore(tt.record), 1e-9)
		})
	}
}

func TestTopNOrdersAndTruncates(t *testing.T) {
	records := []Record{
		{Keyword: "low", Volume: 10, Difficulty: 50, Opportunity: 10},
		{Keyword: "high", Volume: 9000, Difficulty: 10, Opportunity: 90},
		{Keyword: "mid", Volume: 1500, Difficulty: 20, Opportunity: 40},
	}

	top := TopN(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].Keyword)
	assert.Equal(t, "mid", top[1].Keyword)
	assert.Equal(t, "low", records[0].Keyword, "input must not be reordered")
}

func TestTopNTiesKeepInputOrder(t *testing.T) {
	records := []Record{
		{Keyword: "first", Volume: 100, Difficulty: 10},
		{Keyword: "second", Volume: 100, Difficulty: 10},
		{Keyword: "third", Volume: 100, Difficulty: 10},
	}
	top := TopN(records, 3)
	assert.Equal(t, []string{"first", "second", "third"}, Keywords(top))
}

func TestTopNIdempotent(t *testing.T) {
	records := []Record{
		{Keyword: "a", Volume: 300, Difficulty: 3, Opportunity: 20},
		{Keyword: "b", Volume: 300, Difficulty: 3, Opportunity: 20},
		{Keyword: "c", Volume: 12000, Difficulty: 70, Opportunity: 5},
		{Keyword: "d", Volume: 0, Difficulty: 0, Opportunity: 100},
		{Keyword: "e", Volume: 800, Difficulty: 1, Opportunity: 60},
	}
	for k := 0; k <= len(records); k++ {
		once := TopN(records, k)
		assert.Equal(t, once, TopN(once, k), "k=%d", k)
		assert.LessOrEqual(t, len(once), k)
		for i := 1; i < len(once); i++ {
			assert.GreaterOrEqual(t, PriorityScore(once[i-1]), PriorityScore(once[i]))
		}
	}
}

func TestTopNEmptyAndNonPositiveLimit(t *testing.T) {
	assert.Empty(t, TopN(nil, 5))
	assert.Empty(t, TopN([]Record{{Keyword: "a"}}, 0))
}
