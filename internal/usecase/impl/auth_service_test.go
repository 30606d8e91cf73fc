package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"rater/internal/domain/entity"
	domainerrors "rater/internal/domain/errors"
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

const validName = "Alexander Montgomery Fitzgerald"

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	t            *testing.T
	service      usecase.AuthUsecase
	txManager    *mockRepo.MockTransactionManager
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
	publisher    *mockService.MockEventPublisher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)
	publisher := mockService.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewAuthService(txManager, hasher, tokenService, publisher, logger)

	return authServiceFixtures{
		t:            t,
		service:      svc,
		txManager:    txManager,
		hasher:       hasher,
		tokenService: tokenService,
		publisher:    publisher,
	}
}

// onExecute wires one transaction: the setup callback registers repository
// expectations on the factory, and Execute returns whatever the transaction
// function returns.
func (fx authServiceFixtures) onExecute(ctx context.Context, setup func(factory *mockRepo.MockRepositoryFactory)) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(fx.t)
			setup(factory)

			return fn(factory)
		}).
		Once()
}

func TestAuthService_SignUp_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignUpInput{
		Name:     validName,
		Email:    "new@example.com",
		Address:  "1 First Street",
		Password: "Str0ng!Password",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-password", nil)

	userID := uuid.New()

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().AuthRepo().Return(mockAuthRepo)

		mockAuthRepo.EXPECT().
			FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email).
			Return(nil, repository.ErrAuthNotFound)
		mockUserRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.User")).
			Run(func(ctx context.Context, user *entity.User) {
				user.ID = userID
			}).
			Return(nil)
		mockAuthRepo.EXPECT().
			CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).
			Run(func(ctx context.Context, auth *entity.Authentication) {
				assert.Equal(t, userID, auth.UserID)
				assert.Equal(t, "hashed-password", auth.PasswordHash)
			}).
			Return(nil)
	})

	output, err := fx.service.SignUp(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output.User.Profile)
	assert.Equal(t, entity.RoleUser, output.User.Profile.Role)
	assert.Equal(t, input.Email, output.User.Email)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignUpInput{
		Name:     validName,
		Email:    "taken@example.com",
		Password: "Str0ng!Password",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-password", nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().AuthRepo().Return(mockAuthRepo)

		mockAuthRepo.EXPECT().
			FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email).
			Return(&entity.Authentication{}, nil)
	})

	output, err := fx.service.SignUp(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_SignUp_WeakPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignUpInput{
		Name:     validName,
		Email:    "weak@example.com",
		Password: "123",
	}

	fx.hasher.EXPECT().
		ValidatePasswordStrength(input.Password).
		Return(domainerrors.ErrPasswordStrength.WrapMessage("password too short"))

	output, err := fx.service.SignUp(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestAuthService_SignUp_NameTooShort(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignUpInput{
		Name:     "Shorty",
		Email:    "short@example.com",
		Password: "Str0ng!Password",
	}

	output, err := fx.service.SignUp(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAuthService_CreateUserWithRole_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	actorID := uuid.New()
	input := &usecase.CreateUserInput{
		Name:     validName,
		Email:    "owner@example.com",
		Password: "Str0ng!Password",
		Role:     entity.RoleStoreOwner,
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().
			FindProfile(ctx, actorID).
			Return(&entity.Profile{UserID: actorID, Role: entity.RoleAdmin}, nil)
	})

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed-password", nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)

		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().AuthRepo().Return(mockAuthRepo)

		mockAuthRepo.EXPECT().
			FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email).
			Return(nil, repository.ErrAuthNotFound)
		mockUserRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
		mockAuthRepo.EXPECT().CreateAuthentication(ctx, mock.AnythingOfType("*entity.Authentication")).Return(nil)
	})

	output, err := fx.service.CreateUserWithRole(ctx, actorID, input)

	require.NoError(t, err)
	require.NotNil(t, output.User.Profile)
	assert.Equal(t, entity.RoleStoreOwner, output.User.Profile.Role)
}

func TestAuthService_CreateUserWithRole_NotAdmin(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	actorID := uuid.New()
	input := &usecase.CreateUserInput{
		Name:     validName,
		Email:    "owner@example.com",
		Password: "Str0ng!Password",
		Role:     entity.RoleAdmin,
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		mockUserRepo.EXPECT().
			FindProfile(ctx, actorID).
			Return(&entity.Profile{UserID: actorID, Role: entity.RoleUser}, nil)
	})

	output, err := fx.service.CreateUserWithRole(ctx, actorID, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAuthService_CreateUserWithRole_UnknownRole(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.CreateUserInput{
		Name:     validName,
		Email:    "owner@example.com",
		Password: "Str0ng!Password",
		Role:     entity.Role("superuser"),
	}

	output, err := fx.service.CreateUserWithRole(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAuthService_SignIn_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.SignInInput{
		Email:    "user@example.com",
		Password: "Str0ng!Password",
	}

	signedInUser := &entity.User{
		ID:    userID,
		Email: input.Email,
		Profile: &entity.Profile{
			UserID: userID,
			Name:   validName,
			Role:   entity.RoleUser,
		},
	}

	fx.hasher.EXPECT().Check(input.Password, "hashed-password").Return(true)
	fx.tokenService.EXPECT().
		GenerateTokens(userID, entity.RoleUser.String()).
		Return("access-token", "refresh-token", nil)
	fx.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(time.Hour)
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Run(func(ctx context.Context, event *service.AuthEvent) {
			assert.Equal(t, service.AuthEventSignedIn, event.Type)
			assert.Equal(t, userID, event.UserID)
		}).
		Return(nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().AuthRepo().Return(mockAuthRepo)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockAuthRepo.EXPECT().
			FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email).
			Return(&entity.Authentication{UserID: userID, PasswordHash: "hashed-password"}, nil)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(signedInUser, nil)
		mockRefreshRepo.EXPECT().
			CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
			Run(func(ctx context.Context, token *entity.RefreshToken) {
				assert.Equal(t, "refresh-hash", token.TokenHash)
			}).
			Return(nil)
	})

	result, err := fx.service.SignIn(ctx, input)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.Equal(t, "refresh-token", result.RefreshToken)
	assert.Equal(t, signedInUser, result.User)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignInInput{
		Email:    "user@example.com",
		Password: "wrong",
	}

	fx.hasher.EXPECT().Check(input.Password, "hashed-password").Return(false)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().AuthRepo().Return(mockAuthRepo)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockAuthRepo.EXPECT().
			FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email).
			Return(&entity.Authentication{UserID: uuid.New(), PasswordHash: "hashed-password"}, nil)
	})

	result, err := fx.service.SignIn(ctx, input)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.Message(), result.Message)
	assert.Empty(t, result.AccessToken)
	assert.Nil(t, result.User)
}

func TestAuthService_SignIn_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignInInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	}

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)
		mockUserRepo := mockRepo.NewMockUserRepository(t)
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

		factory.EXPECT().AuthRepo().Return(mockAuthRepo)
		factory.EXPECT().UserRepo().Return(mockUserRepo)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

		mockAuthRepo.EXPECT().
			FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email).
			Return(nil, repository.ErrAuthNotFound)
	})

	result, err := fx.service.SignIn(ctx, input)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.Message(), result.Message)
}

func TestAuthService_SignOut_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.SignOutInput{RefreshToken: "refresh-token"}

	fx.tokenService.EXPECT().
		ValidateRefreshToken(input.RefreshToken).
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
	fx.tokenService.EXPECT().HashToken(input.RefreshToken).Return("refresh-hash")
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Run(func(ctx context.Context, event *service.AuthEvent) {
			assert.Equal(t, service.AuthEventSignedOut, event.Type)
			assert.Equal(t, userID, event.UserID)
		}).
		Return(nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
		mockRefreshRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "refresh-hash").Return(nil)
	})

	err := fx.service.SignOut(ctx, input)

	require.NoError(t, err)
}

func TestAuthService_SignOut_InvalidTokenStillDeletes(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.SignOutInput{RefreshToken: "garbage"}

	fx.tokenService.EXPECT().
		ValidateRefreshToken(input.RefreshToken).
		Return(nil, errors.New("token is malformed"))
	fx.tokenService.EXPECT().HashToken(input.RefreshToken).Return("garbage-hash")

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
		mockRefreshRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "garbage-hash").Return(nil)
	})

	err := fx.service.SignOut(ctx, input)

	require.NoError(t, err)
}

func TestAuthService_SignOut_AlreadyEndedSession(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.SignOutInput{RefreshToken: "refresh-token"}

	fx.tokenService.EXPECT().
		ValidateRefreshToken(input.RefreshToken).
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
	fx.tokenService.EXPECT().HashToken(input.RefreshToken).Return("refresh-hash")
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Return(nil)

	// A second sign-out finds no token row; the session is gone either way.
	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
		mockRefreshRepo.EXPECT().
			DeleteRefreshTokenByHash(ctx, "refresh-hash").
			Return(repository.ErrRefreshTokenNotFound)
	})

	err := fx.service.SignOut(ctx, input)

	require.NoError(t, err)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.RefreshTokenInput{RefreshToken: "old-refresh"}

	user := &entity.User{
		ID: userID,
		Profile: &entity.Profile{
			UserID: userID,
			Role:   entity.RoleStoreOwner,
		},
	}

	fx.tokenService.EXPECT().
		ValidateRefreshToken(input.RefreshToken).
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
	fx.tokenService.EXPECT().HashToken("old-refresh").Return("old-hash")
	fx.tokenService.EXPECT().
		GenerateTokens(userID, entity.RoleStoreOwner.String()).
		Return("new-access", "new-refresh", nil)
	fx.tokenService.EXPECT().HashToken("new-refresh").Return("new-hash")
	fx.tokenService.EXPECT().GetRefreshTokenDuration().Return(time.Hour)
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Run(func(ctx context.Context, event *service.AuthEvent) {
			assert.Equal(t, service.AuthEventTokenRefreshed, event.Type)
		}).
		Return(nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
		mockUserRepo := mockRepo.NewMockUserRepository(t)

		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockRefreshRepo.EXPECT().
			FindRefreshTokenByHash(ctx, "old-hash").
			Return(&entity.RefreshToken{UserID: userID, TokenHash: "old-hash"}, nil)
		mockUserRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
		mockRefreshRepo.EXPECT().
			CreateRefreshToken(ctx, mock.AnythingOfType("*entity.RefreshToken")).
			Return(nil)
		mockRefreshRepo.EXPECT().DeleteRefreshTokenByHash(ctx, "old-hash").Return(nil)
	})

	output, err := fx.service.RefreshToken(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
}

func TestAuthService_RefreshToken_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RefreshTokenInput{RefreshToken: "expired"}

	fx.tokenService.EXPECT().
		ValidateRefreshToken(input.RefreshToken).
		Return(nil, errors.New("token is expired"))

	output, err := fx.service.RefreshToken(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestAuthService_RefreshToken_RevokedToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.RefreshTokenInput{RefreshToken: "revoked"}

	fx.tokenService.EXPECT().
		ValidateRefreshToken(input.RefreshToken).
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeRefresh}, nil)
	fx.tokenService.EXPECT().HashToken("revoked").Return("revoked-hash")

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
		mockUserRepo := mockRepo.NewMockUserRepository(t)

		factory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
		factory.EXPECT().UserRepo().Return(mockUserRepo)

		mockRefreshRepo.EXPECT().
			FindRefreshTokenByHash(ctx, "revoked-hash").
			Return(nil, repository.ErrRefreshTokenNotFound)
	})

	output, err := fx.service.RefreshToken(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "refresh token not found or expired")
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{NewPassword: "N3w!Password"}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.NewPassword).Return(nil)
	fx.hasher.EXPECT().Hash(input.NewPassword).Return("new-hash", nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)
		factory.EXPECT().AuthRepo().Return(mockAuthRepo)

		mockAuthRepo.EXPECT().
			FindAuthenticationByUserID(ctx, userID, entity.ProviderTypeEmail).
			Return(&entity.Authentication{UserID: userID, PasswordHash: "old-hash"}, nil)
		mockAuthRepo.EXPECT().
			UpdatePasswordHash(ctx, mock.AnythingOfType("*entity.Authentication")).
			Run(func(ctx context.Context, auth *entity.Authentication) {
				assert.Equal(t, "new-hash", auth.PasswordHash)
			}).
			Return(nil)
	})

	err := fx.service.ChangePassword(ctx, userID, input)

	require.NoError(t, err)
}

func TestAuthService_ChangePassword_NoCredential(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.ChangePasswordInput{NewPassword: "N3w!Password"}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.NewPassword).Return(nil)
	fx.hasher.EXPECT().Hash(input.NewPassword).Return("new-hash", nil)

	fx.onExecute(ctx, func(factory *mockRepo.MockRepositoryFactory) {
		mockAuthRepo := mockRepo.NewMockAuthRepository(t)
		factory.EXPECT().AuthRepo().Return(mockAuthRepo)

		mockAuthRepo.EXPECT().
			FindAuthenticationByUserID(ctx, userID, entity.ProviderTypeEmail).
			Return(nil, repository.ErrAuthNotFound)
	})

	err := fx.service.ChangePassword(ctx, userID, input)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthNotFound))
}
