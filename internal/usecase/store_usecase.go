// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"rater/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateStoreInput defines the data required to register a store.
type CreateStoreInput struct {
	Name    string     `json:"name" validate:"required,max=255"`
	Email   string     `json:"email" validate:"required,email"`
	Address string     `json:"address" validate:"required,max=400"`
	OwnerID *uuid.UUID `json:"ownerId"`
}

// UpdateStoreInput defines the updatable store fields. Nil means "leave unchanged".
type UpdateStoreInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

// StoreUsecase defines the interface for store-related business operations.
type StoreUsecase interface {
	// ListStoresWithRatings retrieves stores together with their derived
	// average and total. When ownerID is non-nil, only that owner's stores
	// are returned. Unrated stores carry (0, 0).
	ListStoresWithRatings(ctx context.Context, ownerID *uuid.UUID) ([]*entity.StoreWithRating, error)

	// GetStore retrieves a single store with its derived aggregates.
	GetStore(ctx context.Context, storeID uuid.UUID) (*entity.StoreWithRating, error)

	// CreateStore registers a store. Admin only. Duplicate contact email is a conflict.
	CreateStore(ctx context.Context, actorID uuid.UUID, input *CreateStoreInput) (*entity.Store, error)

	// UpdateStore modifies a store. Allowed for admins and the assigned owner.
	UpdateStore(ctx context.Context, actorID, storeID uuid.UUID, input *UpdateStoreInput) error

	// DeleteStore removes a store and, by cascade, its ratings. Admin only.
	DeleteStore(ctx context.Context, actorID, storeID uuid.UUID) error
}
