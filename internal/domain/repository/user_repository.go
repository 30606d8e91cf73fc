// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"rater/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrProfileNotFound is returned when an identity exists but has no profile row.
	ErrProfileNotFound = errors.New("profile not found")
)

// UserRepository defines the standard operations for user and profile persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, including the profile.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address, including the profile.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindProfile retrieves the profile row for an identity.
	// Returns ErrProfileNotFound when the identity has no profile.
	FindProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// ListProfiles retrieves all profiles, unfiltered. Reads are unrestricted;
	// writes stay role-gated at the service layer.
	ListProfiles(ctx context.Context) ([]*entity.Profile, error)

	// Create persists a new user entity together with its profile.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity and its profile.
	Update(ctx context.Context, user *entity.User) error

	// UpdateProfile modifies an existing profile row only.
	UpdateProfile(ctx context.Context, profile *entity.Profile) error
}
