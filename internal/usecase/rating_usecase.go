// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"rater/internal/domain/entity"

	"github.com/google/uuid"
)

// RateStoreInput defines a rating submission.
type RateStoreInput struct {
	StoreID uuid.UUID
	Score   int
}

// RatingUsecase defines the interface for rating-related business operations.
type RatingUsecase interface {
	// RateStore submits or overwrites the acting user's rating for a store
	// and returns the store's fresh aggregates.
	RateStore(ctx context.Context, actorID uuid.UUID, input *RateStoreInput) (*entity.StoreWithRating, error)

	// GetOwnRating retrieves the acting user's rating for a store.
	// Returns (nil, nil) when the user has not rated the store.
	GetOwnRating(ctx context.Context, actorID, storeID uuid.UUID) (*entity.Rating, error)

	// ListStoreRatings retrieves all ratings for a store joined with rater
	// details. Allowed for admins and the store's assigned owner.
	ListStoreRatings(ctx context.Context, actorID, storeID uuid.UUID) ([]*entity.RatingWithRater, error)
}
