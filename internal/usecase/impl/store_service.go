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

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.StoreUsecase {
	return &storeService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListStoresWithRatings retrieves stores with their derived aggregates.
// Aggregation happens in memory on every read; averages are never persisted,
// so a freshly written rating is always reflected.
func (srv *storeService) ListStoresWithRatings(ctx context.Context, ownerID *uuid.UUID) ([]*entity.StoreWithRating, error) {
	srv.logger.Debug("Listing stores with ratings")

	var result []*entity.StoreWithRating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		var stores []*entity.Store
		var err error
		if ownerID != nil {
			stores, err = storeRepo.ListByOwner(ctx, *ownerID)
		} else {
			stores, err = storeRepo.List(ctx)
		}
		if err != nil {
			return errors.Wrap(err, "failed to list stores")
		}

		storeIDs := make([]uuid.UUID, 0, len(stores))
		for _, store := range stores {
			storeIDs = append(storeIDs, store.ID)
		}

		ratings, err := ratingRepo.ListByStoreIDs(ctx, storeIDs)
		if err != nil {
			return errors.Wrap(err, "failed to list ratings")
		}

		summaries := entity.SummarizeByStore(ratings)

		result = make([]*entity.StoreWithRating, 0, len(stores))
		for _, store := range stores {
			summary := summaries[store.ID] // zero value covers unrated stores
			result = append(result, &entity.StoreWithRating{
				Store:         *store,
				AverageRating: summary.Average,
				TotalRatings:  summary.Total,
			})
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores with ratings")
	}

	return result, nil
}

// GetStore retrieves a single store with its derived aggregates.
func (srv *storeService) GetStore(ctx context.Context, storeID uuid.UUID) (*entity.StoreWithRating, error) {
	srv.logger.Debug("Getting store", "storeID", storeID)

	var result *entity.StoreWithRating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		store, err := repoFactory.StoreRepo().FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return errors.Wrap(domainerrors.ErrStoreNotFound, "store not found")
			}

			return errors.Wrap(err, "failed to find store")
		}

		ratings, err := repoFactory.RatingRepo().ListByStoreIDs(ctx, []uuid.UUID{storeID})
		if err != nil {
			return errors.Wrap(err, "failed to list ratings")
		}

		summary := entity.SummarizeByStore(ratings)[storeID]
		result = &entity.StoreWithRating{
			Store:         *store,
			AverageRating: summary.Average,
			TotalRatings:  summary.Total,
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get store")
	}

	return result, nil
}

// CreateStore registers a store. Admin only.
func (srv *storeService) CreateStore(ctx context.Context, actorID uuid.UUID, input *usecase.CreateStoreInput) (*entity.Store, error) {
	srv.logger.Info("Creating store", "actorID", actorID, "email", input.Email)

	if input.Name == "" || input.Email == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("store name and email are required")
	}

	var created *entity.Store

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		storeRepo := repoFactory.StoreRepo()

		if err := requireRole(ctx, userRepo, actorID, entity.RoleAdmin); err != nil {
			return err
		}

		// An explicit owner must hold the store_owner role.
		if input.OwnerID != nil {
			ownerProfile, err := userRepo.FindProfile(ctx, *input.OwnerID)
			if err != nil {
				return errors.Wrap(domainerrors.ErrStoreOwnerInvalid, "owner profile not found")
			}
			if ownerProfile.Role != entity.RoleStoreOwner {
				return errors.Wrap(domainerrors.ErrStoreOwnerInvalid, "owner is not a store owner")
			}
		}

		store := &entity.Store{
			Name:    input.Name,
			Email:   input.Email,
			Address: input.Address,
			OwnerID: input.OwnerID,
		}
		if err := storeRepo.Create(ctx, store); err != nil {
			return errors.Wrap(err, "failed to create store")
		}
		created = store

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to create store", "error", err, "email", input.Email)

		return nil, errors.Wrap(err, "failed to create store")
	}
	srv.logger.Debug("Store created", "storeID", created.ID)

	return created, nil
}

// UpdateStore modifies a store. Allowed for admins and the assigned owner.
func (srv *storeService) UpdateStore(ctx context.Context, actorID, storeID uuid.UUID, input *usecase.UpdateStoreInput) error {
	srv.logger.Info("Updating store", "actorID", actorID, "storeID", storeID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		storeRepo := repoFactory.StoreRepo()

		store, err := storeRepo.FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return errors.Wrap(domainerrors.ErrStoreNotFound, "store not found")
			}

			return errors.Wrap(err, "failed to find store")
		}

		// Authorize: admin, or the owner assigned to this store.
		isOwner := store.OwnerID != nil && *store.OwnerID == actorID
		if !isOwner {
			if err := requireRole(ctx, userRepo, actorID, entity.RoleAdmin); err != nil {
				return err
			}
		}

		if input.Name != nil {
			store.Name = *input.Name
		}
		if input.Email != nil {
			store.Email = *input.Email
		}
		if input.Address != nil {
			store.Address = *input.Address
		}
		if store.Name == "" || store.Email == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("store name and email are required")
		}

		if err := storeRepo.Update(ctx, store); err != nil {
			return errors.Wrap(err, "failed to update store")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to update store", "error", err, "storeID", storeID)

		return errors.Wrap(err, "failed to update store")
	}

	return nil
}

// DeleteStore removes a store. Admin only; ratings follow via cascade.
func (srv *storeService) DeleteStore(ctx context.Context, actorID, storeID uuid.UUID) error {
	srv.logger.Info("Deleting store", "actorID", actorID, "storeID", storeID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := requireRole(ctx, repoFactory.UserRepo(), actorID, entity.RoleAdmin); err != nil {
			return err
		}

		if err := repoFactory.StoreRepo().Delete(ctx, storeID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return errors.Wrap(domainerrors.ErrStoreNotFound, "store not found")
			}

			return errors.Wrap(err, "failed to delete store")
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to delete store", "error", err, "storeID", storeID)

		return errors.Wrap(err, "failed to delete store")
	}

	return nil
}

// requireRole verifies the acting user's profile holds the wanted role.
func requireRole(ctx context.Context, userRepo repository.UserRepository, actorID uuid.UUID, role entity.Role) error {
	profile, err := userRepo.FindProfile(ctx, actorID)
	if err != nil {
		return errors.Wrap(domainerrors.ErrForbidden, "acting profile not found")
	}
	if profile.Role != role {
		return errors.Wrapf(domainerrors.ErrForbidden, "%s role required", role.String())
	}

	return nil
}
