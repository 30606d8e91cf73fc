package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"rater/internal/domain/service"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

// stubSessionUsecase captures the subscription made at startup.
type stubSessionUsecase struct {
	handler   func(event *service.AuthEvent)
	cancelled bool
}

func (s *stubSessionUsecase) Resolve(_ context.Context, _ string) (*usecase.SessionResolution, error) {
	return nil, nil
}

func (s *stubSessionUsecase) Subscribe(handler func(event *service.AuthEvent)) (cancel func()) {
	s.handler = handler

	return func() { s.cancelled = true }
}

func TestWatchSessionEvents(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	stub := &stubSessionUsecase{}

	watchSessionEvents(sessionEventsParams{
		Lifecycle: lc,
		Sessions:  stub,
		Logger:    slog.Default(),
	})

	require.NotNil(t, stub.handler, "startup must register an auth event subscription")

	// The handler must tolerate a live event without panicking.
	stub.handler(&service.AuthEvent{
		Type:       service.AuthEventSignedIn,
		UserID:     uuid.New(),
		OccurredAt: time.Now(),
	})

	lc.RequireStart()
	assert.False(t, stub.cancelled)

	lc.RequireStop()
	assert.True(t, stub.cancelled, "shutdown must cancel the subscription")
}
