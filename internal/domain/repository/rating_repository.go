// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"rater/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRatingNotFound is returned when a rating is not found.
var ErrRatingNotFound = errors.New("rating not found")

// RatingRepository defines the standard operations for rating persistence.
type RatingRepository interface {
	// Upsert inserts a rating or overwrites the existing (user, store) rating,
	// keyed on the composite unique constraint. The entity is filled in with the
	// resulting row's ID and timestamps.
	Upsert(ctx context.Context, rating *entity.Rating) error

	// FindByUserAndStore retrieves one user's rating for one store.
	// Returns ErrRatingNotFound when the pair has no rating.
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error)

	// ListByStoreIDs retrieves all ratings whose store is among the given IDs.
	ListByStoreIDs(ctx context.Context, storeIDs []uuid.UUID) ([]*entity.Rating, error)

	// ListByStoreWithRater retrieves all ratings for a store, each joined with
	// the rater's profile name and account email.
	ListByStoreWithRater(ctx context.Context, storeID uuid.UUID) ([]*entity.RatingWithRater, error)
}
