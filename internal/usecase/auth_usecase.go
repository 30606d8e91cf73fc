// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"rater/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
// The public registration path always creates a regular user; the role
// is never read from the client.
type SignUpInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"max=400"`
	Password string `json:"password" validate:"required"`
}

// CreateUserInput defines the data an administrator supplies to create an
// account with an explicit role.
type CreateUserInput struct {
	Name     string
	Email    string
	Address  string
	Password string
	Role     entity.Role
}

// SignInInput defines the data required to sign in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenInput carries the refresh token being exchanged.
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SignOutInput carries the refresh token of the session being ended.
type SignOutInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ChangePasswordInput carries the new password for an authenticated user.
type ChangePasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

// --- Output DTOs ---

// SignUpOutput returns the newly created account.
type SignUpOutput struct {
	User *entity.User
}

// AuthResult is the outcome of a sign-in attempt. A failed attempt is a
// result with Success=false and a message, never a propagated exception.
type AuthResult struct {
	Success      bool
	Message      string
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns the replacement token pair.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// AuthUsecase defines the interface for authentication-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// SignUp registers a regular user. Identity, profile and credential are
	// created in a single transaction.
	SignUp(ctx context.Context, input *SignUpInput) (*SignUpOutput, error)

	// CreateUserWithRole registers an account with an explicit role. The
	// acting user must hold the admin role; the check runs server-side.
	CreateUserWithRole(ctx context.Context, actorID uuid.UUID, input *CreateUserInput) (*SignUpOutput, error)

	// SignIn verifies credentials and issues a token pair. Credential
	// failures come back as an unsuccessful AuthResult, not an error.
	SignIn(ctx context.Context, input *SignInInput) (*AuthResult, error)

	// SignOut ends the session identified by the refresh token.
	SignOut(ctx context.Context, input *SignOutInput) error

	// RefreshToken rotates a valid refresh token for a new token pair.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)

	// ChangePassword replaces the password of an authenticated user.
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
}
