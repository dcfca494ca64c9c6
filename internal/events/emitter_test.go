package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// recordingHandler implements EventHandler for testing
type recordingHandler struct {
	lastEvent    *AccountEvent
	handlerError error
	handledCount int
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *AccountEvent) error {
	h.lastEvent = event
	h.handledCount++
	return h.handlerError
}

func TestNewAccountEvent(t *testing.T) {
	userID := uuid.New()
	event := NewAccountEvent(AccountRoleChanged, userID, "user@example.com").
		WithDetail("old_role", "user").
		WithDetail("new_role", "admin")

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, AccountRoleChanged, event.Type)
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, "user@example.com", event.Email)
	assert.Equal(t, map[string]string{"old_role": "user", "new_role": "admin"}, event.Detail)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	event := NewAccountEvent(AccountRegistered, uuid.New(), "user@example.com")

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &recordingHandler{}
		handler2 := &recordingHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.handledCount)
		assert.Equal(t, 1, handler2.handledCount)
		assert.Same(t, event, handler1.lastEvent)
		assert.Same(t, event, handler2.lastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		failing := &recordingHandler{handlerError: errors.New("handler error")}
		success := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(success)

		err := emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler 0: handler error")

		// Both handlers still received the event
		assert.Equal(t, 1, failing.handledCount)
		assert.Equal(t, 1, success.handledCount)
	})

	t.Run("all failures are reported", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		errA, errB := errors.New("a"), errors.New("b")
		emitter.RegisterHandler(&recordingHandler{handlerError: errA})
		emitter.RegisterHandler(&recordingHandler{handlerError: errB})

		err := emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
	})

	t.Run("nil event", func(t *testing.T) {
		assert.Error(t, NewInMemoryEventEmitter(nil).EmitEvent(context.Background(), nil))
	})
}
