// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"rater/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines the standard operations for store persistence.
type StoreRepository interface {
	// FindByID retrieves a single store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// FindByEmail retrieves a single store by its unique contact email.
	FindByEmail(ctx context.Context, email string) (*entity.Store, error)

	// List retrieves all stores.
	List(ctx context.Context) ([]*entity.Store, error)

	// ListByOwner retrieves all stores assigned to an owning profile.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error)

	// Create persists a new store and fills in the server-assigned ID and timestamps.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies an existing store.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store. Its ratings are removed by the cascade constraint.
	Delete(ctx context.Context, id uuid.UUID) error
}
