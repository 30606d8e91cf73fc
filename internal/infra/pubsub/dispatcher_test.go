package pubsub

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"rater/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type recordingBackend struct {
	events []*service.AuthEvent
	closed bool
}

func (b *recordingBackend) PublishAuthEvent(_ context.Context, event *service.AuthEvent) error {
	b.events = append(b.events, event)

	return nil
}

func (b *recordingBackend) Close() error {
	b.closed = true

	return nil
}

func TestDispatcher_FanOutAndForward(t *testing.T) {
	backend := &recordingBackend{}
	d := NewDispatcher(backend, slog.Default())

	var received []*service.AuthEvent
	cancel := d.Subscribe(func(event *service.AuthEvent) {
		received = append(received, event)
	})
	defer cancel()

	event := &service.AuthEvent{
		Type:       service.AuthEventSignedIn,
		UserID:     uuid.New(),
		OccurredAt: time.Now(),
	}

	err := d.PublishAuthEvent(context.Background(), event)
	assert.NoError(t, err)

	// Both the local subscriber and the backend saw the event.
	assert.Len(t, received, 1)
	assert.Equal(t, service.AuthEventSignedIn, received[0].Type)
	assert.Len(t, backend.events, 1)
}

func TestDispatcher_CancelRemovesSubscription(t *testing.T) {
	d := NewDispatcher(&recordingBackend{}, slog.Default())

	count := 0
	cancel := d.Subscribe(func(_ *service.AuthEvent) {
		count++
	})

	event := &service.AuthEvent{Type: service.AuthEventSignedOut, UserID: uuid.New()}

	assert.NoError(t, d.PublishAuthEvent(context.Background(), event))
	assert.Equal(t, 1, count)

	cancel()

	assert.NoError(t, d.PublishAuthEvent(context.Background(), event))
	assert.Equal(t, 1, count)
}

func TestDispatcher_MultipleSubscribers(t *testing.T) {
	d := NewDispatcher(&recordingBackend{}, slog.Default())

	first, second := 0, 0
	cancelFirst := d.Subscribe(func(_ *service.AuthEvent) { first++ })
	defer cancelFirst()
	cancelSecond := d.Subscribe(func(_ *service.AuthEvent) { second++ })
	defer cancelSecond()

	event := &service.AuthEvent{Type: service.AuthEventTokenRefreshed, UserID: uuid.New()}
	assert.NoError(t, d.PublishAuthEvent(context.Background(), event))

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestDispatcher_CloseReleasesBackend(t *testing.T) {
	backend := &recordingBackend{}
	d := NewDispatcher(backend, slog.Default())

	assert.NoError(t, d.Close())
	assert.True(t, backend.closed)
}
