package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		scores  []int
		average float64
		total   int
	}{
		{name: "three ratings", scores: []int{5, 4, 3}, average: 4.0, total: 3},
		{name: "no ratings", scores: nil, average: 0, total: 0},
		{name: "single rating", scores: []int{2}, average: 2.0, total: 1},
		{name: "rounded to one decimal", scores: []int{5, 4}, average: 4.5, total: 2},
		{name: "repeating mean rounds", scores: []int{5, 5, 4}, average: 4.7, total: 3},
		{name: "rounds down", scores: []int{1, 1, 2}, average: 1.3, total: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize(tt.scores)

			assert.InDelta(t, tt.average, summary.Average, 0.001)
			assert.Equal(t, tt.total, summary.Total)
		})
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	forward := Summarize([]int{1, 3, 5, 2, 4})
	backward := Summarize([]int{4, 2, 5, 3, 1})

	assert.Equal(t, forward, backward)
}

func TestSummarizeByStore(t *testing.T) {
	storeA := uuid.New()
	storeB := uuid.New()
	unrated := uuid.New()

	ratings := []*Rating{
		{StoreID: storeA, Score: 5},
		{StoreID: storeB, Score: 1},
		{StoreID: storeA, Score: 4},
		{StoreID: storeA, Score: 3},
	}

	summaries := SummarizeByStore(ratings)

	assert.Len(t, summaries, 2)
	assert.InDelta(t, 4.0, summaries[storeA].Average, 0.001)
	assert.Equal(t, 3, summaries[storeA].Total)
	assert.InDelta(t, 1.0, summaries[storeB].Average, 0.001)
	assert.Equal(t, 1, summaries[storeB].Total)

	// Absence is the zero summary.
	assert.Zero(t, summaries[unrated].Average)
	assert.Zero(t, summaries[unrated].Total)
}

func TestValidScore(t *testing.T) {
	assert.True(t, ValidScore(MinScore))
	assert.True(t, ValidScore(MaxScore))
	assert.True(t, ValidScore(3))
	assert.False(t, ValidScore(0))
	assert.False(t, ValidScore(6))
	assert.False(t, ValidScore(-3))
}
