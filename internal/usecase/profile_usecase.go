// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"rater/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the updatable profile fields. Nil means "leave unchanged".
type UpdateProfileInput struct {
	Name    *string `json:"name" validate:"omitempty,min=20,max=60"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile retrieves the profile of an identity. Returns NotFound when
	// the identity has no profile row.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// ListProfiles retrieves every profile. Reads are open to any
	// authenticated user.
	ListProfiles(ctx context.Context) ([]*entity.Profile, error)

	// UpdateProfile modifies a profile. Only the owning user updates their
	// own row; admins go through the same path for any row.
	UpdateProfile(ctx context.Context, actorID, userID uuid.UUID, input *UpdateProfileInput) error

	// AssignRole changes a profile's role. Admin only. Assigning store_owner
	// links any store whose contact email matches the profile owner's email.
	AssignRole(ctx context.Context, actorID, userID uuid.UUID, role entity.Role) error
}
