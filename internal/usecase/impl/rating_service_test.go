package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"rater/internal/domain/entity"
	domainerrors "rater/internal/domain/errors"
	"rater/internal/domain/repository"
	mockRepo "rater/internal/mocks/repository"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ratingServiceFixtures holds all test dependencies for rating service tests.
type ratingServiceFixtures struct {
	t         *testing.T
	service   usecase.RatingUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestRatingService(t *testing.T) ratingServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewRatingService(txManager, logger)

	return ratingServiceFixtures{
		t:         t,
		service:   svc,
		txManager: txManager,
	}
}

func (fx ratingServiceFixtures) onExecute(ctx context.Context, setup func(factory *mockRepo.MockRepositoryFactory)) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(fx.t)
			setup(factory)

			return fn(factory)
		}).
		Once()
}

func TestRatingService_RateStore_FirstRating(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	actorID := uuid.New()
	storeID := uuid.New()
	input := &usecase.RateStoreInput{StoreID: storeID, Score: 4}

	store := &entity.Store{ID: storeID, Name: "Corner Grocery", Email: "grocery@example.com"}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockStoreRepo := mockRepo.NewMockStoreRepository(t)
		mockRatingRepo := mockRepo.NewMockRatingRepository(t)

		factory.EXPECT().StoreRepo().Return(mockStoreRepo)
		factory.EXPECT().RatingRepo().Return(mockRatingRepo)

		mockStoreRepo.EXPECT().FindByID(ctx, storeID).Return(store, nil)
		mockRatingRepo.EXPECT().
			Upsert(ctx, mock.AnythingOfType("*entity.Rating")).
			Run(func(ctx context.Context, rating *entity.Rating) {
				assert.Equal(t, actorID, rating.UserID)
				assert.Equal(t, storeID, rating.StoreID)
				assert.Equal(t, 4, rating.Score)
			}).
			Return(nil)
		mockRatingRepo.EXPECT().
			ListByStoreIDs(ctx, []uuid.UUID{storeID}).
			Return([]*entity.Rating{{UserID: actorID, StoreID: storeID, Score: 4}}, nil)
	})

	result, err := fx.service.RateStore(ctx, actorID, input)

	require.NoError(t, err)
	assert.InDelta(t, 4.0, result.AverageRating, 0.001)
	assert.Equal(t, 1, result.TotalRatings)
}

func TestRatingService_RateStore_RerateKeepsCount(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	actorID := uuid.New()
	otherID := uuid.New()
	storeID := uuid.New()
	input := &usecase.RateStoreInput{StoreID: storeID, Score: 5}

	store := &entity.Store{ID: storeID, Name: "Corner Grocery", Email: "grocery@example.com"}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockStoreRepo := mockRepo.NewMockStoreRepository(t)
		mockRatingRepo := mockRepo.NewMockRatingRepository(t)

		factory.EXPECT().StoreRepo().Return(mockStoreRepo)
		factory.EXPECT().RatingRepo().Return(mockRatingRepo)

		mockStoreRepo.EXPECT().FindByID(ctx, storeID).Return(store, nil)
		mockRatingRepo.EXPECT().Upsert(ctx, mock.AnythingOfType("*entity.Rating")).Return(nil)
		// The earlier score 3 has been overwritten, not duplicated.
		mockRatingRepo.EXPECT().
			ListByStoreIDs(ctx, []uuid.UUID{storeID}).
			Return([]*entity.Rating{
				{UserID: actorID, StoreID: storeID, Score: 5},
				{UserID: otherID, StoreID: storeID, Score: 2},
			}, nil)
	})

	result, err := fx.service.RateStore(ctx, actorID, input)

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalRatings)
	assert.InDelta(t, 3.5, result.AverageRating, 0.001)
}

func TestRatingService_RateStore_ScoreOutOfRange(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()

	for _, score := range []int{0, 6, -1} {
		result, err := fx.service.RateStore(ctx, uuid.New(), &usecase.RateStoreInput{
			StoreID: uuid.New(),
			Score:   score,
		})

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, domainerrors.ErrRatingOutOfRange))
	}
}

func TestRatingService_RateStore_StoreNotFound(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	storeID := uuid.New()

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockStoreRepo := mockRepo.NewMockStoreRepository(t)
		mockRatingRepo := mockRepo.NewMockRatingRepository(t)

		factory.EXPECT().StoreRepo().Return(mockStoreRepo)
		factory.EXPECT().RatingRepo().Return(mockRatingRepo)

		mockStoreRepo.EXPECT().FindByID(ctx, storeID).Return(nil, repository.ErrStoreNotFound)
	})

	result, err := fx.service.RateStore(ctx, uuid.New(), &usecase.RateStoreInput{StoreID: storeID, Score: 3})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreNotFound))
}

func TestRatingService_GetOwnRating_Found(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	actorID := uuid.New()
	storeID := uuid.New()
	expected := &entity.Rating{UserID: actorID, StoreID: storeID, Score: 3}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockRatingRepo := mockRepo.NewMockRatingRepository(t)
		factory.EXPECT().RatingRepo().Return(mockRatingRepo)
		mockRatingRepo.EXPECT().FindByUserAndStore(ctx, actorID, storeID).Return(expected, nil)
	})

	rating, err := fx.service.GetOwnRating(ctx, actorID, storeID)

	require.NoError(t, err)
	assert.Equal(t, expected, rating)
}

func TestRatingService_GetOwnRating_Absent(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	actorID := uuid.New()
	storeID := uuid.New()

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockRatingRepo := mockRepo.NewMockRatingRepository(t)
		factory.EXPECT().RatingRepo().Return(mockRatingRepo)
		mockRatingRepo.EXPECT().
			FindByUserAndStore(ctx, actorID, storeID).
			Return(nil, repository.ErrRatingNotFound)
	})

	rating, err := fx.service.GetOwnRating(ctx, actorID, storeID)

	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestRatingService_ListStoreRatings_AsOwner(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID, Name: "Corner Grocery", OwnerID: &ownerID}
	expected := []*entity.RatingWithRater{
		{
			Rating:     entity.Rating{UserID: uuid.New(), StoreID: storeID, Score: 5},
			RaterName:  validName,
			RaterEmail: "rater@example.com",
		},
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockStoreRepo := mockRepo.NewMockStoreRepository(t)
		mockRatingRepo := mockRepo.NewMockRatingRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().StoreRepo().Return(mockStoreRepo)
		factory.EXPECT().RatingRepo().Return(mockRatingRepo)

		mockStoreRepo.EXPECT().FindByID(ctx, storeID).Return(store, nil)
		mockRatingRepo.EXPECT().ListByStoreWithRater(ctx, storeID).Return(expected, nil)
	})

	ratings, err := fx.service.ListStoreRatings(ctx, ownerID, storeID)

	require.NoError(t, err)
	assert.Equal(t, expected, ratings)
}

func TestRatingService_ListStoreRatings_AdminAccess(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	adminID := uuid.New()
	ownerID := uuid.New()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID, Name: "Corner Grocery", OwnerID: &ownerID}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockStoreRepo := mockRepo.NewMockStoreRepository(t)
		mockRatingRepo := mockRepo.NewMockRatingRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().StoreRepo().Return(mockStoreRepo)
		factory.EXPECT().RatingRepo().Return(mockRatingRepo)

		mockStoreRepo.EXPECT().FindByID(ctx, storeID).Return(store, nil)
		mockUserRepo.EXPECT().
			FindProfile(ctx, adminID).
			Return(&entity.Profile{UserID: adminID, Role: entity.RoleAdmin}, nil)
		mockRatingRepo.EXPECT().ListByStoreWithRater(ctx, storeID).Return([]*entity.RatingWithRater{}, nil)
	})

	ratings, err := fx.service.ListStoreRatings(ctx, adminID, storeID)

	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestRatingService_ListStoreRatings_StrangerForbidden(t *testing.T) {
	fx := createTestRatingService(t)

	ctx := context.Background()
	actorID := uuid.New()
	ownerID := uuid.New()
	storeID := uuid.New()

	store := &entity.Store{ID: storeID, Name: "Corner Grocery", OwnerID: &ownerID}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockStoreRepo := mockRepo.NewMockStoreRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().StoreRepo().Return(mockStoreRepo)

		mockStoreRepo.EXPECT().FindByID(ctx, storeID).Return(store, nil)
		mockUserRepo.EXPECT().
			FindProfile(ctx, actorID).
			Return(&entity.Profile{UserID: actorID, Role: entity.RoleUser}, nil)
	})

	ratings, err := fx.service.ListStoreRatings(ctx, actorID, storeID)

	assert.Error(t, err)
	assert.Nil(t, ratings)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
