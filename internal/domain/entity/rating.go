// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Score bounds for a rating. The database carries the matching check constraint.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is one user's evaluation of one store.
// At most one rating exists per (user, store) pair; a second submission
// overwrites the first.
type Rating struct {
	ID        uuid.UUID // The unique ID for this rating row.
	UserID    uuid.UUID // The rater's identity.
	StoreID   uuid.UUID // The rated store.
	Score     int       // Integer score in [1,5].
	CreatedAt time.Time // Timestamp of the first submission.
	UpdatedAt time.Time // Timestamp of the latest submission.
}

// ValidScore reports whether a score lies within the allowed range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// RatingWithRater joins a rating with the rater's profile details,
// for display to the owning store's dashboard.
type RatingWithRater struct {
	Rating
	RaterName  string
	RaterEmail string
}
