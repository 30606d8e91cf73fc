// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	"rater/internal/domain/entity"
	domainerrors "rater/internal/domain/errors"
	"rater/internal/domain/repository"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetProfile retrieves the profile of an identity.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	srv.logger.Debug("Getting profile", "userID", userID)

	var profile *entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}
		profile = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return profile, nil
}

// ListProfiles retrieves every profile. Reads are open to any authenticated user.
func (srv *profileService) ListProfiles(ctx context.Context) ([]*entity.Profile, error) {
	srv.logger.Debug("Listing profiles")

	var profiles []*entity.Profile

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().ListProfiles(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list profiles")
		}
		profiles = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list profiles")
	}

	return profiles, nil
}

// UpdateProfile modifies a profile's name and address. The acting user must
// be the profile owner or hold the admin role.
func (srv *profileService) UpdateProfile(ctx context.Context, actorID, userID uuid.UUID, input *usecase.UpdateProfileInput) error {
	srv.logger.Info("Updating profile", "actorID", actorID, "userID", userID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// 1. Authorize: self-service or admin.
		if actorID != userID {
			actorProfile, err := userRepo.FindProfile(ctx, actorID)
			if err != nil {
				return errors.Wrap(domainerrors.ErrForbidden, "acting profile not found")
			}
			if actorProfile.Role != entity.RoleAdmin {
				return errors.Wrap(domainerrors.ErrForbidden, "cannot update another user's profile")
			}
		}

		// 2. Find the target profile.
		profile, err := userRepo.FindProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile not found")
			}

			return errors.Wrap(err, "failed to find profile")
		}

		// 3. Apply the changes and re-validate bounds.
		if input.Name != nil {
			profile.Name = *input.Name
		}
		if input.Address != nil {
			profile.Address = *input.Address
		}
		if err := validateProfileFields(profile.Name, profile.Address); err != nil {
			return err
		}

		// 4. Save the updated profile.
		if err := userRepo.UpdateProfile(ctx, profile); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to update profile", "error", err, "userID", userID)

		return errors.Wrap(err, "failed to update profile")
	}

	return nil
}

// AssignRole changes a profile's role. Admin only. Assigning store_owner links
// any store whose contact email matches the account's email; assigning away
// from store_owner releases the stores the profile owned.
func (srv *profileService) AssignRole(ctx context.Context, actorID, userID uuid.UUID, role entity.Role) error {
	srv.logger.Info("Assigning role", "actorID", actorID, "userID", userID, "role", role.String())

	if !role.IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		storeRepo := repoFactory.StoreRepo()

		// 1. Authorize the acting user.
		actorProfile, err := userRepo.FindProfile(ctx, actorID)
		if err != nil {
			return errors.Wrap(domainerrors.ErrForbidden, "acting profile not found")
		}
		if actorProfile.Role != entity.RoleAdmin {
			return errors.Wrap(domainerrors.ErrForbidden, "admin role required")
		}

		// 2. Fetch the target account with its profile.
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}
		if user.Profile == nil {
			return errors.Wrap(domainerrors.ErrProfileNotFound, "user has no profile")
		}

		previousRole := user.Profile.Role
		if previousRole == role {
			return nil
		}

		user.Profile.Role = role
		if err := userRepo.UpdateProfile(ctx, user.Profile); err != nil {
			return errors.Wrap(err, "failed to update role")
		}

		// 3. Ownership trigger: link the store whose contact email matches.
		if role == entity.RoleStoreOwner {
			return srv.linkOwnedStore(ctx, storeRepo, user)
		}

		// 4. Demotion releases any stores the profile owned.
		if previousRole == entity.RoleStoreOwner {
			return srv.releaseOwnedStores(ctx, storeRepo, userID)
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to assign role", "error", err, "userID", userID)

		return errors.Wrap(err, "failed to assign role")
	}

	return nil
}

func (srv *profileService) linkOwnedStore(ctx context.Context, storeRepo repository.StoreRepository, user *entity.User) error {
	store, err := storeRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			// Nothing to link; the role assignment stands on its own.
			return nil
		}

		return errors.Wrap(err, "failed to find store by email")
	}

	store.OwnerID = &user.ID
	if err := storeRepo.Update(ctx, store); err != nil {
		return errors.Wrap(err, "failed to link store to owner")
	}
	srv.logger.Info("Linked store to new owner", "storeID", store.ID, "ownerID", user.ID)

	return nil
}

func (srv *profileService) releaseOwnedStores(ctx context.Context, storeRepo repository.StoreRepository, ownerID uuid.UUID) error {
	stores, err := storeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return errors.Wrap(err, "failed to list owned stores")
	}

	for _, store := range stores {
		store.OwnerID = nil
		if err := storeRepo.Update(ctx, store); err != nil {
			return errors.Wrap(err, "failed to release store ownership")
		}
	}

	return nil
}
