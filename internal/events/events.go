package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Account event types.
const (
	AccountRegistered  = "account.registered"
	AccountLoginFailed = "account.login_failed"
	AccountDeleted     = "account.deleted"
	AccountRoleChanged = "account.role_changed"
)

// AccountEvent records something that happened to an account.
type AccountEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Account* constants
	Type string `json:"type"`

	// UserID is the affected account. uuid.Nil for failed logins against an
	// unknown email.
	UserID uuid.UUID `json:"user_id"`

	// Email is the address involved, as presented.
	Email string `json:"email,omitempty"`

	// Detail holds event-specific attributes, e.g. old and new role.
	Detail map[string]string `json:"detail,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountEvent creates an AccountEvent of the given type.
func NewAccountEvent(eventType string, userID uuid.UUID, email string) *AccountEvent {
	return &AccountEvent{
		ID:        uuid.New(),
		Type:      eventType,
		UserID:    userID,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// WithDetail sets a detail attribute and returns the event.
func (e *AccountEvent) WithDetail(key, value string) *AccountEvent {
	if e.Detail == nil {
		e.Detail = make(map[string]string)
	}
	e.Detail[key] = value
	return e
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *AccountEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *AccountEvent) error
}
