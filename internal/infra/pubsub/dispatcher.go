// Package pubsub provides auth event publishing over several backends and the
// in-process dispatcher that pushes session changes to subscribers.
package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"rater/internal/domain/service"
)

// dispatcher fans auth events out to in-process subscribers and forwards them
// to the configured backend publisher. Subscribers receive every event the
// process publishes, which lets the session layer react to sign-in and
// sign-out without polling.
type dispatcher struct {
	backend service.EventPublisher
	logger  *slog.Logger

	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(event *service.AuthEvent)
}

// NewDispatcher wraps a backend publisher with in-process fan-out.
func NewDispatcher(backend service.EventPublisher, logger *slog.Logger) *dispatcher {
	return &dispatcher{
		backend:  backend,
		logger:   logger,
		handlers: make(map[int]func(event *service.AuthEvent)),
	}
}

// PublishAuthEvent delivers the event to local subscribers first, then to the backend.
func (d *dispatcher) PublishAuthEvent(ctx context.Context, event *service.AuthEvent) error {
	d.mu.RLock()
	handlers := make([]func(event *service.AuthEvent), 0, len(d.handlers))
	for _, handler := range d.handlers {
		handlers = append(handlers, handler)
	}
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}

	if d.backend == nil {
		return nil
	}

	if err := d.backend.PublishAuthEvent(ctx, event); err != nil {
		// Local subscribers already saw the event; a backend failure must not
		// roll back the auth operation itself.
		d.logger.Warn("auth event backend publish failed",
			slog.String("type", event.Type),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

// Subscribe registers a handler and returns its removal function.
func (d *dispatcher) Subscribe(handler func(event *service.AuthEvent)) (cancel func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.handlers[id] = handler
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.handlers, id)
		d.mu.Unlock()
	}
}

// Close releases the backend publisher.
func (d *dispatcher) Close() error {
	if d.backend == nil {
		return nil
	}

	return d.backend.Close()
}
