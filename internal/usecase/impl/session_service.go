// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"rater/internal/domain/entity"
	"rater/internal/domain/repository"
	"rater/internal/domain/service"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager    repository.TransactionManager
	tokenService service.TokenService
	publisher    service.EventPublisher
	subscriber   service.EventSubscriber
	logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	txManager repository.TransactionManager,
	tokenService service.TokenService,
	publisher service.EventPublisher,
	subscriber service.EventSubscriber,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		txManager:    txManager,
		tokenService: tokenService,
		publisher:    publisher,
		subscriber:   subscriber,
		logger:       logger,
	}
}

// Resolve turns an access token into one of three outcomes: an authenticated
// session, an anonymous resolution, or a forced sign-out when the identity
// exists without a profile row. Token problems are anonymous, never errors.
func (srv *sessionService) Resolve(ctx context.Context, accessToken string) (*usecase.SessionResolution, error) {
	if accessToken == "" {
		return anonymousResolution(), nil
	}

	claims, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		srv.logger.Debug("Session token rejected", "error", err)

		return anonymousResolution(), nil
	}

	var session *entity.Session
	forcedSignOut := false

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// The identity behind the token is gone; nothing to clean up.
				return nil
			}

			return errors.Wrap(err, "failed to find user")
		}

		if user.Profile == nil {
			// Identity without profile is an inconsistent account. End every
			// session so the client lands back at sign-in.
			forcedSignOut = true
			if err := repoFactory.RefreshTokenRepo().DeleteRefreshTokensByUserID(ctx, user.ID); err != nil {
				return errors.Wrap(err, "failed to revoke sessions")
			}

			return nil
		}

		session = &entity.Session{
			UserID:  user.ID,
			Email:   user.Email,
			Profile: user.Profile,
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve session")
	}

	if forcedSignOut {
		srv.logger.Warn("Forced sign-out: identity without profile", "userID", claims.UserID)
		srv.publishSignedOut(ctx, claims.UserID)

		resolution := anonymousResolution()
		resolution.ForcedSignOut = true

		return resolution, nil
	}

	if session == nil {
		return anonymousResolution(), nil
	}

	return &usecase.SessionResolution{
		Session: session,
		State:   session.State(),
	}, nil
}

// Subscribe registers a handler for session-changing auth events.
func (srv *sessionService) Subscribe(handler func(event *service.AuthEvent)) (cancel func()) {
	return srv.subscriber.Subscribe(handler)
}

func (srv *sessionService) publishSignedOut(ctx context.Context, userID uuid.UUID) {
	event := &service.AuthEvent{
		Type:       service.AuthEventSignedOut,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
	if err := srv.publisher.PublishAuthEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish forced sign-out event", "error", err)
	}
}

func anonymousResolution() *usecase.SessionResolution {
	return &usecase.SessionResolution{
		State: entity.SessionAnonymous,
	}
}
