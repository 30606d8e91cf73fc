// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"rater/internal/domain/entity"
	domainerrors "rater/internal/domain/errors"
	"rater/internal/domain/repository"
	"rater/internal/domain/service"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenService service.TokenService,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		publisher:    publisher,
		logger:       logger,
	}
}

// SignUp orchestrates the public registration flow. The created profile always
// carries the user role regardless of anything the client sent.
func (srv *authService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	srv.logger.Info("Starting user registration", "email", input.Email)

	user, err := srv.register(ctx, input.Name, input.Email, input.Address, input.Password, entity.RoleUser)
	if err != nil {
		srv.logger.Error("Failed to execute registration transaction", "error", err, "email", input.Email)

		return nil, err
	}
	srv.logger.Debug("User registered successfully", "userID", user.ID)

	return &usecase.SignUpOutput{User: user}, nil
}

// CreateUserWithRole registers an account with an explicit role. The acting
// user's admin role is verified server-side inside the same transaction.
func (srv *authService) CreateUserWithRole(ctx context.Context, actorID uuid.UUID, input *usecase.CreateUserInput) (*usecase.SignUpOutput, error) {
	srv.logger.Info("Starting admin user creation", "email", input.Email, "role", input.Role.String())

	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	if err := srv.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	user, err := srv.register(ctx, input.Name, input.Email, input.Address, input.Password, input.Role)
	if err != nil {
		srv.logger.Error("Failed to execute admin user creation transaction", "error", err, "email", input.Email)

		return nil, err
	}
	srv.logger.Debug("User created by admin", "userID", user.ID, "role", input.Role.String())

	return &usecase.SignUpOutput{User: user}, nil
}

// register runs the shared registration transaction: identity, profile and
// email credential are created atomically so no identity can exist without
// its profile row.
func (srv *authService) register(ctx context.Context, name, email, address, password string, role entity.Role) (*entity.User, error) {
	if err := validateProfileFields(name, address); err != nil {
		return nil, err
	}

	if err := srv.hasher.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	var registeredUser *entity.User

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		// 1. Check if an authentication method with this email already exists.
		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		if err == nil {
			// If no error, it means an auth record was found.
			return domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed")
		}
		// We expect a 'not found' error. If it's a different error, something went wrong.
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to find authentication")
		}

		// 2. Create the User entity and its profile.
		newUser := &entity.User{
			Email: email,
			Profile: &entity.Profile{
				Name:    name,
				Address: address,
				Role:    role,
			},
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.WithStack(err)
		}

		// 3. Create the Authentication entity (the email/password credential).
		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.WithStack(err)
		}
		registeredUser = newUser

		return nil
	})
	if err != nil {
		return nil, err
	}

	return registeredUser, nil
}

// SignIn verifies credentials and issues a token pair. A credential failure
// comes back as an unsuccessful result, not an error.
func (srv *authService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.AuthResult, error) {
	srv.logger.Debug("Starting sign-in", "email", input.Email)

	var signedInUser *entity.User
	var accessToken, refreshTokenString string
	credentialsOK := true

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()
		userRepo := repoFactory.UserRepo()
		refreshRepo := repoFactory.RefreshTokenRepo()

		// 1. Find the authentication method.
		authRecord, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				credentialsOK = false

				return nil
			}

			return errors.Wrap(err, "failed to find authentication")
		}

		// 2. Check the password.
		if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
			credentialsOK = false

			return nil
		}

		// 3. Fetch the full user and profile to determine the role.
		user, err := userRepo.FindByID(ctx, authRecord.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user by id")
		}

		role := ""
		if user.Profile != nil {
			role = user.Profile.Role.String()
		}

		// 4. Generate new tokens.
		accessToken, refreshTokenString, err = srv.tokenService.GenerateTokens(user.ID, role)
		if err != nil {
			return errors.Wrap(err, "failed to generate tokens")
		}

		// 5. Securely store the new refresh token.
		if err := srv.storeRefreshToken(ctx, refreshRepo, user.ID, refreshTokenString); err != nil {
			return err
		}
		signedInUser = user

		return nil
	})
	if err != nil {
		srv.logger.Warn("Sign-in failed", "email", input.Email, "error", err.Error())

		return nil, errors.Wrap(err, "failed to execute sign-in transaction")
	}

	if !credentialsOK {
		srv.logger.Debug("Sign-in rejected", "email", input.Email)

		return &usecase.AuthResult{
			Success: false,
			Message: domainerrors.ErrInvalidCredentials.Message(),
		}, nil
	}

	srv.publishAuthEvent(ctx, service.AuthEventSignedIn, signedInUser.ID)
	srv.logger.Debug("User signed in successfully", "userID", signedInUser.ID)

	return &usecase.AuthResult{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         signedInUser,
	}, nil
}

// SignOut invalidates a session by deleting its refresh token.
func (srv *authService) SignOut(ctx context.Context, input *usecase.SignOutInput) error {
	srv.logger.Info("Attempting to sign out")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.logger.Warn("Sign-out with invalid token", "error", err)
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		if err := refreshRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
			// An already-deleted token still means the session is gone;
			// sign-out clears the session unconditionally.
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				srv.logger.Debug("Sign-out for an already-ended session")

				return nil
			}

			return errors.Wrap(err, "failed to delete refresh token")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute sign-out transaction", "error", err)

		return errors.Wrap(err, "failed to execute sign-out transaction")
	}

	if claims != nil {
		srv.publishAuthEvent(ctx, service.AuthEventSignedOut, claims.UserID)
	}
	srv.logger.Info("Successfully signed out")

	return nil
}

// RefreshToken rotates a valid refresh token for a new token pair.
func (srv *authService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.logger.Info("Attempting to refresh token")

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("invalid refresh token")
	}

	var newAccessToken, newRefreshTokenString string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		userRepo := repoFactory.UserRepo()

		// 1. Verify the refresh token exists in the database.
		tokenHash := srv.tokenService.HashToken(input.RefreshToken)

		if _, err := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "refresh token not found or expired")
		}

		// 2. Fetch user and re-resolve the role; a role change takes effect here.
		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		role := ""
		if user.Profile != nil {
			role = user.Profile.Role.String()
		}

		// 3. Generate new tokens.
		newAccessToken, newRefreshTokenString, err = srv.tokenService.GenerateTokens(user.ID, role)
		if err != nil {
			return errors.Wrap(err, "failed to generate new tokens")
		}

		// 4. Store the new refresh token.
		if err := srv.storeRefreshToken(ctx, refreshRepo, user.ID, newRefreshTokenString); err != nil {
			return err
		}

		// 5. Delete the old refresh token.
		if err := refreshRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
			// Log the error but don't fail the transaction, as the user has a new valid token.
			srv.logger.Warn("Failed to delete old refresh token", "error", err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute refresh token transaction", "error", err)

		return nil, errors.Wrap(err, "failed to execute refresh token transaction")
	}

	srv.publishAuthEvent(ctx, service.AuthEventTokenRefreshed, claims.UserID)

	return &usecase.RefreshTokenOutput{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	}, nil
}

// ChangePassword replaces the password of an authenticated user. The session
// is already authenticated, so no current-password check is performed.
func (srv *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.logger.Info("Changing password", "userID", userID)

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		authRecord, err := authRepo.FindAuthenticationByUserID(ctx, userID, entity.ProviderTypeEmail)
		if err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				return domainerrors.ErrAuthNotFound.WrapMessage("no email credential for user")
			}

			return errors.Wrap(err, "failed to find authentication")
		}

		authRecord.PasswordHash = hashedPassword
		if err := authRepo.UpdatePasswordHash(ctx, authRecord); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to execute password change transaction", "error", err, "userID", userID)

		return errors.Wrap(err, "failed to execute password change transaction")
	}
	srv.logger.Debug("Password changed", "userID", userID)

	return nil
}

// requireAdmin verifies the acting user holds the admin role.
func (srv *authService) requireAdmin(ctx context.Context, actorID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profile, err := repoFactory.UserRepo().FindProfile(ctx, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return domainerrors.ErrForbidden.WrapMessage("acting user has no profile")
			}

			return errors.Wrap(err, "failed to find acting profile")
		}

		if profile.Role != entity.RoleAdmin {
			return domainerrors.ErrForbidden.WrapMessage("admin role required")
		}

		return nil
	})
}

// storeRefreshToken hashes and persists a refresh token as the durable session row.
func (srv *authService) storeRefreshToken(ctx context.Context, refreshRepo repository.RefreshTokenRepository, userID uuid.UUID, refreshTokenString string) error {
	newRefreshToken := &entity.RefreshToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	if err := refreshRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// publishAuthEvent pushes a session-change event. Publish failures are logged
// by the dispatcher and never fail the auth operation.
func (srv *authService) publishAuthEvent(ctx context.Context, eventType string, userID uuid.UUID) {
	event := &service.AuthEvent{
		Type:       eventType,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
	if err := srv.publisher.PublishAuthEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish auth event", "type", eventType, "error", err)
	}
}

// validateProfileFields enforces the profile name and address bounds.
func validateProfileFields(name, address string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < entity.ProfileNameMinLen || nameLen > entity.ProfileNameMaxLen {
		return domainerrors.ErrValidationFailed.WrapMessage("name length out of bounds")
	}
	if utf8.RuneCountInString(address) > entity.ProfileAddressMaxLen {
		return domainerrors.ErrValidationFailed.WrapMessage("address too long")
	}

	return nil
}
