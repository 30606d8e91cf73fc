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
)

// storeRepository implements the domain.StoreRepository interface using GORM.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// FindByID retrieves a single store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&storeM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomain(&storeM), nil
}

// FindByEmail retrieves a single store by its unique contact email.
func (repo *storeRepository) FindByEmail(ctx context.Context, email string) (*entity.Store, error) {
	var storeM model.StoreModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&storeM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by email")
	}

	return toStoreDomain(&storeM), nil
}

// List retrieves all stores ordered by name for stable listings.
func (repo *storeRepository) List(ctx context.Context) ([]*entity.Store, error) {
	var storeMs []model.StoreModel
	err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&storeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return toStoreDomains(storeMs), nil
}

// ListByOwner retrieves all stores assigned to an owning profile.
func (repo *storeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Store, error) {
	var storeMs []model.StoreModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&storeMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores by owner")
	}

	return toStoreDomains(storeMs), nil
}

// Create persists a new store to the database.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStoreEmailTaken.WrapMessage("store email already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrStoreOwnerInvalid.WrapMessage("owner profile does not exist")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid store information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Update modifies an existing store in the database.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	// Explicit column list so a cleared OwnerID is persisted as NULL.
	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", storeM.ID).
		Updates(map[string]any{
			"name":     storeM.Name,
			"email":    storeM.Email,
			"address":  storeM.Address,
			"owner_id": storeM.OwnerID,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrStoreEmailTaken.WrapMessage("store email already exists")
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrStoreOwnerInvalid.WrapMessage("owner profile does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// Delete removes a store. Its ratings follow via the cascade constraint.
func (repo *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.StoreModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete store")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Address:   data.Address,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toStoreDomains(data []model.StoreModel) []*entity.Store {
	stores := make([]*entity.Store, 0, len(data))
	for i := range data {
		stores = append(stores, toStoreDomain(&data[i]))
	}

	return stores
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel for persistence.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:      data.ID,
		Name:    data.Name,
		Email:   data.Email,
		Address: data.Address,
		OwnerID: data.OwnerID,
	}
}
