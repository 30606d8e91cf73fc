package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Auth event types pushed on every session change.
const (
	AuthEventSignedIn       = "signed_in"
	AuthEventSignedOut      = "signed_out"
	AuthEventTokenRefreshed = "token_refreshed"
)

// AuthEvent represents a session-change notification. The session context
// re-resolves the current session on every received event.
type AuthEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`                 // signed_in, signed_out, token_refreshed
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing auth events.
type EventPublisher interface {
	// PublishAuthEvent publishes a session-change event for subscribers.
	PublishAuthEvent(ctx context.Context, event *AuthEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}

// EventSubscriber receives auth events pushed by the in-process dispatcher.
type EventSubscriber interface {
	// Subscribe registers a handler for auth events and returns a cancel
	// function that removes the subscription. Handlers run on the publishing
	// goroutine and must not block.
	Subscribe(handler func(event *AuthEvent)) (cancel func())
}
