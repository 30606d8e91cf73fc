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

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.RatingUsecase {
	return &ratingService{
		txManager: txManager,
		logger:    logger,
	}
}

// RateStore submits or overwrites the acting user's rating for a store.
// The write and the aggregate re-read run in one transaction, so the returned
// average and total always include the new score.
func (srv *ratingService) RateStore(ctx context.Context, actorID uuid.UUID, input *usecase.RateStoreInput) (*entity.StoreWithRating, error) {
	srv.logger.Info("Rating store", "actorID", actorID, "storeID", input.StoreID, "score", input.Score)

	if !entity.ValidScore(input.Score) {
		return nil, domainerrors.ErrRatingOutOfRange.WrapMessage("score outside allowed range")
	}

	var result *entity.StoreWithRating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()
		ratingRepo := repoFactory.RatingRepo()

		store, err := storeRepo.FindByID(ctx, input.StoreID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return errors.Wrap(domainerrors.ErrStoreNotFound, "store not found")
			}

			return errors.Wrap(err, "failed to find store")
		}

		rating := &entity.Rating{
			UserID:  actorID,
			StoreID: input.StoreID,
			Score:   input.Score,
		}
		if err := ratingRepo.Upsert(ctx, rating); err != nil {
			return errors.Wrap(err, "failed to upsert rating")
		}

		ratings, err := ratingRepo.ListByStoreIDs(ctx, []uuid.UUID{input.StoreID})
		if err != nil {
			return errors.Wrap(err, "failed to list ratings")
		}

		summary := entity.SummarizeByStore(ratings)[input.StoreID]
		result = &entity.StoreWithRating{
			Store:         *store,
			AverageRating: summary.Average,
			TotalRatings:  summary.Total,
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to rate store", "error", err, "storeID", input.StoreID)

		return nil, errors.Wrap(err, "failed to rate store")
	}
	srv.logger.Debug("Store rated", "storeID", input.StoreID, "average", result.AverageRating, "total", result.TotalRatings)

	return result, nil
}

// GetOwnRating retrieves the acting user's rating for a store.
// An absent rating is (nil, nil), not an error.
func (srv *ratingService) GetOwnRating(ctx context.Context, actorID, storeID uuid.UUID) (*entity.Rating, error) {
	srv.logger.Debug("Getting own rating", "actorID", actorID, "storeID", storeID)

	var rating *entity.Rating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.RatingRepo().FindByUserAndStore(ctx, actorID, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find rating")
		}
		rating = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get own rating")
	}

	return rating, nil
}

// ListStoreRatings retrieves all ratings for a store joined with rater details.
// Allowed for admins and the store's assigned owner.
func (srv *ratingService) ListStoreRatings(ctx context.Context, actorID, storeID uuid.UUID) ([]*entity.RatingWithRater, error) {
	srv.logger.Debug("Listing store ratings", "actorID", actorID, "storeID", storeID)

	var ratings []*entity.RatingWithRater

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

		isOwner := store.OwnerID != nil && *store.OwnerID == actorID
		if !isOwner {
			if err := requireRole(ctx, userRepo, actorID, entity.RoleAdmin); err != nil {
				return err
			}
		}

		found, err := repoFactory.RatingRepo().ListByStoreWithRater(ctx, storeID)
		if err != nil {
			return errors.Wrap(err, "failed to list ratings with rater")
		}
		ratings = found

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to list store ratings", "error", err, "storeID", storeID)

		return nil, errors.Wrap(err, "failed to list store ratings")
	}

	return ratings, nil
}
