package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		keyword string
		volume  int
		want    ClusterName
	}{
		{"prezzo modelli costumi", 10, ClusterPrice},
		{"modelli costumi", 10, ClusterType},
		{"costumi per piscina", 10, ClusterUsage},
		{"costumi qualità", 10, ClusterFeature},
		{"costumi", 500, ClusterPrimary},
		{"costumi", 499, ClusterOther},
		{"Cheap Swimsuit", 10, ClusterPrice},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(Record{Keyword: tt.keyword, Volume: tt.volume}))
		})
	}
}

func TestClusterPartitionsInput(t *testing.T) {
	records := []Record{
		{Keyword: "costumi da nuoto", Volume: 5000},
		{Keyword: "costumi da nuoto", Volume: 5000},
		{Keyword: "costumi offerta", Volume: 100},
		{Keyword: "tipi di costume", Volume: 50},
		{Keyword: "come scegliere costume", Volume: 40},
		{Keyword: "costume professionale", Volume: 30},
		{Keyword: "bikini", Volume: 20},
	}

	clusters := Cluster(records)
	require.Len(t, clusters, 6)
	for _, name := range ClusterOrder {
		_, ok := clusters[name]
		assert.True(t, ok, "bucket %s must exist", name)
	}

	var union []Record
	for _, members := range clusters {
		union = append(union, members...)
	}
	assert.ElementsMatch(t, records, union)
	assert.Len(t, clusters[ClusterPrimary], 2)
	assert.Len(t, clusters[ClusterOther], 1)
}

func TestAnalyze(t *testing.T) {
	records := []Record{
		{Keyword: "costumi", Volume: 800},
		{Keyword: "costumi donna", Volume: 1200},
		{Keyword: "costumi uomo", Volume: 1200},
	}
	for i := 0; i < 7; i++ {
		records = append(records, Record{Keyword: "bikini", Volume: 600})
	}

	a := Analyze(records, 3)
	assert.Equal(t, 10, a.TotalKeywords)
	assert.Equal(t, "costumi donna", a.MainKeyword)
	assert.Equal(t, 800+1200+1200+7*600, a.TotalVolume)
	assert.Len(t, a.TopKeywords, 3)
	assert.Len(t, a.Clusters[ClusterPrimary], 5)
}

func TestFormatTableSortsByVolume(t *testing.T) {
	out := FormatTable([]Record{
		{Keyword: "small", Volume: 1},
		{Keyword: "big", Volume: 100, Difficulty: 20, Opportunity: 70, CommercialIntent: 3},
	})
	assert.Contains(t, out, "| big | 100 | 20 | 70 | 3 |\n| small | 1 | 0 | 0 | 0 |")
}
