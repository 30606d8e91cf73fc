// Package entity contains the core business objects of the project.
package entity

import (
	"math"

	"github.com/google/uuid"
)

// RatingSummary is the derived aggregate of a store's ratings.
// It is recomputed from raw rating rows on every read and never stored.
type RatingSummary struct {
	Average float64 // Arithmetic mean of scores, rounded to one decimal. 0 when Total is 0.
	Total   int     // Number of ratings.
}

// Summarize computes the aggregate of a set of scores.
// The result depends only on the multiset of scores, not on their order.
func Summarize(scores []int) RatingSummary {
	if len(scores) == 0 {
		return RatingSummary{}
	}

	sum := 0
	for _, score := range scores {
		sum += score
	}

	mean := float64(sum) / float64(len(scores))

	return RatingSummary{
		Average: math.Round(mean*10) / 10,
		Total:   len(scores),
	}
}

// SummarizeByStore groups ratings by store and computes each store's aggregate.
// Stores with no ratings are absent from the result; callers treat absence as
// the zero summary.
func SummarizeByStore(ratings []*Rating) map[uuid.UUID]RatingSummary {
	grouped := make(map[uuid.UUID][]int)
	for _, rating := range ratings {
		grouped[rating.StoreID] = append(grouped[rating.StoreID], rating.Score)
	}

	summaries := make(map[uuid.UUID]RatingSummary, len(grouped))
	for storeID, scores := range grouped {
		summaries[storeID] = Summarize(scores)
	}

	return summaries
}
