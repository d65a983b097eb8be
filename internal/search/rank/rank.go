// Package rank merges per-source hits into one deterministically ordered,
// relevance-ranked result list.
package rank

import (
	"sort"
	"time"

	"beacon_backend/internal/search/domain"
)

// Hit is a match from one retrieval source before merging. The result carries
// its normalized relevance score; LastActivity is the recency signal used for
// tie-breaking.
type Hit struct {
	Result       domain.Result
	LastActivity time.Time
}

// typeWeight biases normalized scores per entity type. Primary entities
// surface slightly above supporting records at equal text-match strength.
var typeWeight = map[domain.SearchableType]float64{
	domain.TypeCustomer:    1.0,
	domain.TypeStakeholder: 0.95,
	domain.TypeTask:        0.9,
	domain.TypeNote:        0.9,
	domain.TypeActivity:    0.85,
	domain.TypeDocument:    0.85,
	domain.TypeEmail:       0.85,
	domain.TypeMeeting:     0.85,
	domain.TypePlaybook:    0.8,
}

// Normalize maps a raw non-negative source score into [0, 1], applying the
// per-type weight. The mapping is monotonic, so source-local ordering
// survives normalization.
func Normalize(score float64, t domain.SearchableType) float64 {
	if score < 0 {
		score = 0
	}
	weight, ok := typeWeight[t]
	if !ok {
		weight = 0.8
	}
	return weight * (score / (score + 1))
}

// Merge flattens hits from all sources into a single ordered result list.
// Order: relevance score descending, then recency descending, then the fixed
// type priority, then ID. Identical inputs always produce identical output.
func Merge(hits []Hit) []domain.Result {
	sorted := make([]Hit, len(hits))
	copy(sorted, hits)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Result.RelevanceScore != b.Result.RelevanceScore {
			return a.Result.RelevanceScore > b.Result.RelevanceScore
		}
		if !a.LastActivity.Equal(b.LastActivity) {
			return a.LastActivity.After(b.LastActivity)
		}
		if a.Result.Type != b.Result.Type {
			return a.Result.Type.Priority() < b.Result.Type.Priority()
		}
		return a.Result.ID.String() < b.Result.ID.String()
	})

	results := make([]domain.Result, len(sorted))
	for i, h := range sorted {
		results[i] = h.Result
	}
	return results
}
