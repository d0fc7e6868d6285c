package keyword

import "strings"

// ClusterName identifies one of the fixed semantic buckets.
type ClusterName string

const (
	ClusterPrice   ClusterName = "price"
	ClusterType    ClusterName = "type"
	ClusterUsage   ClusterName = "usage"
	ClusterFeature ClusterName = "feature"
	ClusterPrimary ClusterName = "primary"
	ClusterOther   ClusterName = "other"
)

// primaryVolume is the volume from which an unmatched keyword counts as a head term.
const primaryVolume = 500

// ClusterOrder lists every bucket in presentation order.
var ClusterOrder = []ClusterName{
	ClusterPrimary, ClusterPrice, ClusterType, ClusterUsage, ClusterFeature, ClusterOther,
}

type termSet struct {
	name  ClusterName
	terms []string
}

// Checked in this order; the first set with a substring hit wins.
var termSets = []termSet{
	{ClusterPrice, []string{"prezzo", "prezzi", "costo", "economico", "offerta", "price", "cheap"}},
	{ClusterType, []string{"tipo", "tipi", "modello", "modelli", "varietà", "type", "model", "kind"}},
	{ClusterUsage, []string{"per", "come", "quando", "dove", "utilizzo", "how to", "for ", "when", "where"}},
	{ClusterFeature, []string{"materiale", "qualità", "migliore", "professionale", "material", "quality", "best", "professional"}},
}

// Classify returns the bucket a single record belongs to.
func Classify(r Record) ClusterName {
	lower := strings.ToLower(r.Keyword)
	for _, set := range termSets {
		for _, term := range set.terms {
			if strings.Contains(lower, term) {
				return set.name
			}
		}
	}
	if r.Volume >= primaryVolume {
		return ClusterPrimary
	}
	return ClusterOther
}

// Cluster partitions records into the six buckets. Every bucket is present in the
// result, possibly empty, and every record lands in exactly one of them.
func Cluster(records []Record) map[ClusterName][]Record {
	clusters := make(map[ClusterName][]Record, len(ClusterOrder))
	for _, name := range ClusterOrder {
		clusters[name] = []Record{}
	}
	for _, r := range records {
		name := Classify(r)
		clusters[name] = append(clusters[name], r)
	}
	return clusters
}
