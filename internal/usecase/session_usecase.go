// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"rater/internal/domain/entity"
	"rater/internal/domain/service"
)

// SessionResolution is the outcome of resolving an access token into a session.
// Exactly one of three shapes comes back: an authenticated session, an
// anonymous result, or an anonymous result with ForcedSignOut set when the
// identity exists without a profile row.
type SessionResolution struct {
	Session       *entity.Session // nil when anonymous
	State         entity.SessionState
	ForcedSignOut bool // identity without profile: every session was revoked
}

// SessionUsecase resolves access tokens into session snapshots and exposes
// the auth event stream that drives re-resolution.
type SessionUsecase interface {
	// Resolve turns an access token into a session resolution. An empty or
	// invalid token yields an anonymous resolution without error. A valid
	// identity lacking a profile row yields a forced sign-out resolution.
	Resolve(ctx context.Context, accessToken string) (*SessionResolution, error)

	// Subscribe registers a handler for session-changing auth events and
	// returns a cancel function that removes the subscription.
	Subscribe(handler func(event *service.AuthEvent)) (cancel func())
}
