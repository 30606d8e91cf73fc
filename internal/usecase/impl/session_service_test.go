package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"rater/internal/domain/entity"
	"rater/internal/domain/repository"
	"rater/internal/domain/service"
	mockRepo "rater/internal/mocks/repository"
	mockService "rater/internal/mocks/service"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sessionServiceFixtures holds all test dependencies for session service tests.
type sessionServiceFixtures struct {
	t            *testing.T
	service      usecase.SessionUsecase
	txManager    *mockRepo.MockTransactionManager
	tokenService *mockService.MockTokenService
	publisher    *mockService.MockEventPublisher
	subscriber   *mockService.MockEventSubscriber
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	tokenService := mockService.NewMockTokenService(t)
	publisher := mockService.NewMockEventPublisher(t)
	subscriber := mockService.NewMockEventSubscriber(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewSessionService(txManager, tokenService, publisher, subscriber, logger)

	return sessionServiceFixtures{
		t:            t,
		service:      svc,
		txManager:    txManager,
		tokenService: tokenService,
		publisher:    publisher,
		subscriber:   subscriber,
	}
}

func (fx sessionServiceFixtures) onExecute(ctx context.Context, setup func(factory *mockRepo.MockRepositoryFactory)) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(fx.t)
			setup(factory)

			return fn(factory)
		}).
		Once()
}

func TestSessionService_Resolve_EmptyTokenIsAnonymous(t *testing.T) {
	fx := createTestSessionService(t)

	resolution, err := fx.service.Resolve(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, entity.SessionAnonymous, resolution.State)
	assert.Nil(t, resolution.Session)
	assert.False(t, resolution.ForcedSignOut)
}

func TestSessionService_Resolve_InvalidTokenIsAnonymous(t *testing.T) {
	fx := createTestSessionService(t)

	fx.tokenService.EXPECT().
		ValidateAccessToken("bad-token").
		Return(nil, errors.New("token is malformed"))

	resolution, err := fx.service.Resolve(context.Background(), "bad-token")

	require.NoError(t, err)
	assert.Equal(t, entity.SessionAnonymous, resolution.State)
	assert.Nil(t, resolution.Session)
}

func TestSessionService_Resolve_Authenticated(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:    userID,
		Email: "owner@example.com",
		Profile: &entity.Profile{
			UserID: userID,
			Name:   validName,
			Role:   entity.RoleStoreOwner,
		},
	}

	fx.tokenService.EXPECT().
		ValidateAccessToken("good-token").
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeAccess}, nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	})

	resolution, err := fx.service.Resolve(ctx, "good-token")

	require.NoError(t, err)
	require.NotNil(t, resolution.Session)
	assert.Equal(t, entity.SessionStoreOwner, resolution.State)
	assert.Equal(t, userID, resolution.Session.UserID)
	assert.False(t, resolution.ForcedSignOut)
}

func TestSessionService_Resolve_VanishedUserIsAnonymous(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().
		ValidateAccessToken("good-token").
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeAccess}, nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)
	})

	resolution, err := fx.service.Resolve(ctx, "good-token")

	require.NoError(t, err)
	assert.Equal(t, entity.SessionAnonymous, resolution.State)
	assert.Nil(t, resolution.Session)
	assert.False(t, resolution.ForcedSignOut)
}

func TestSessionService_Resolve_IdentityWithoutProfileForcesSignOut(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	userID := uuid.New()

	user := &entity.User{
		ID:    userID,
		Email: "broken@example.com",
		// Profile intentionally nil to trigger the forced sign-out path.
	}

	fx.tokenService.EXPECT().
		ValidateAccessToken("good-token").
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeAccess}, nil)
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Run(func(ctx context.Context, event *service.AuthEvent) {
			assert.Equal(t, service.AuthEventSignedOut, event.Type)
			assert.Equal(t, userID, event.UserID)
		}).
		Return(nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
		mockRefreshRepo.EXPECT().DeleteRefreshTokensByUserID(ctx, userID).Return(nil)
	})

	resolution, err := fx.service.Resolve(ctx, "good-token")

	require.NoError(t, err)
	assert.True(t, resolution.ForcedSignOut)
	assert.Equal(t, entity.SessionAnonymous, resolution.State)
	assert.Nil(t, resolution.Session)
}

func TestSessionService_Subscribe_Delegates(t *testing.T) {
	fx := createTestSessionService(t)

	canceled := false
	fx.subscriber.EXPECT().
		Subscribe(mock.AnythingOfType("func(*service.AuthEvent)")).
		Return(func() { canceled = true })

	cancel := fx.service.Subscribe(func(event *service.AuthEvent) {})
	cancel()

	assert.True(t, canceled)
}
