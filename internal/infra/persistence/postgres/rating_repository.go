package postgres

import (
	"context"

	"rater/internal/domain/entity"
	domainerrors "rater/internal/domain/errors"
	"rater/internal/domain/repository"
	"rater/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ratingRepository implements the domain.RatingRepository interface using GORM.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts a rating or overwrites the existing (user, store) rating.
// The ON CONFLICT clause targets the composite unique index, so resubmitting
// a rating updates the score in place instead of adding a second row.
func (repo *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"score":      ratingM.Score,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(ratingM).Error
	if err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrRatingOutOfRange.WrapMessage("score outside allowed range")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreNotFound.WrapMessage("rated store does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert rating")
	}

	// Re-read the row so the entity reflects the surviving ID and timestamps
	// regardless of whether the statement inserted or updated.
	stored, err := repo.FindByUserAndStore(ctx, rating.UserID, rating.StoreID)
	if err != nil {
		return err
	}
	*rating = *stored

	return nil
}

// FindByUserAndStore retrieves one user's rating for one store.
func (repo *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&ratingM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating")
	}

	return toRatingDomain(&ratingM), nil
}

// ListByStoreIDs retrieves all ratings whose store is among the given IDs.
func (repo *ratingRepository) ListByStoreIDs(ctx context.Context, storeIDs []uuid.UUID) ([]*entity.Rating, error) {
	if len(storeIDs) == 0 {
		return []*entity.Rating{}, nil
	}

	var ratingMs []model.RatingModel
	err := repo.db.WithContext(ctx).
		Where("store_id IN ?", storeIDs).
		Find(&ratingMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings by store ids")
	}

	ratings := make([]*entity.Rating, 0, len(ratingMs))
	for i := range ratingMs {
		ratings = append(ratings, toRatingDomain(&ratingMs[i]))
	}

	return ratings, nil
}

// ratingWithRaterRow is the scan target for the rating-with-rater join.
type ratingWithRaterRow struct {
	model.RatingModel
	RaterName  string
	RaterEmail string
}

// ListByStoreWithRater retrieves all ratings for a store, each joined with
// the rater's profile name and account email.
func (repo *ratingRepository) ListByStoreWithRater(ctx context.Context, storeID uuid.UUID) ([]*entity.RatingWithRater, error) {
	var rows []ratingWithRaterRow
	err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("ratings.*, profiles.name AS rater_name, users.email AS rater_email").
		Joins("JOIN users ON users.id = ratings.user_id").
		Joins("JOIN profiles ON profiles.user_id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings with rater")
	}

	ratings := make([]*entity.RatingWithRater, 0, len(rows))
	for i := range rows {
		ratings = append(ratings, &entity.RatingWithRater{
			Rating:     *toRatingDomain(&rows[i].RatingModel),
			RaterName:  rows[i].RaterName,
			RaterEmail: rows[i].RaterEmail,
		})
	}

	return ratings, nil
}

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Score:     data.Score,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel for persistence.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:      data.ID,
		UserID:  data.UserID,
		StoreID: data.StoreID,
		Score:   data.Score,
	}
}
