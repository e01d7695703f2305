package domain

import (
	"context"
	"time"
)

// Registration represents a user's registration for an event.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, userID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// Attendee is one row of an event's attendee list.
// swagger:model Attendee
type Attendee struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RegistrationWithEvent bundles a registration with its related event.
// swagger:model RegistrationWithEvent
type RegistrationWithEvent struct {
	Registration *Registration `json:"registration"`
	Event        *Event        `json:"event"`
}

// RegistrationRepository defines storage operations for event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// Delete removes the (event, user) registration and reports whether a row was removed.
	Delete(ctx context.Context, eventID, userID string) (bool, error)
	// ListAttendees returns the event's attendees ordered by registration time ascending.
	ListAttendees(ctx context.Context, eventID string) ([]*Attendee, error)
	ListByUser(ctx context.Context, userID string) ([]*Registration, error)
	Count(ctx context.Context) (int, error)
	CountEventsWithRegistrations(ctx context.Context) (int, error)
}

// RegistrationLedger admits registrations and owns the attendee list of every event.
// It performs no authorization; callers decide who may act on whose behalf.
type RegistrationLedger interface {
	Register(ctx context.Context, userID, eventID string) (*Registration, error)
	Unregister(ctx context.Context, userID, eventID string) (bool, error)
	RemoveAttendee(ctx context.Context, actorID, targetUserID, eventID string) (bool, error)
	ListAttendees(ctx context.Context, eventID string) ([]*Attendee, error)
	RegisteredCount(ctx context.Context, eventID string) (int, error)
	IsFull(ctx context.Context, eventID string) (bool, error)
	IsRegistered(ctx context.Context, userID, eventID string) (bool, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]*RegistrationWithEvent, error)
}

// AttendeeService defines attendee-facing operations such as event registration.
type AttendeeService interface {
	Register(ctx context.Context, actor Actor, eventID string) (*Registration, error)
	Unregister(ctx context.Context, actor Actor, eventID string) (bool, error)
	ListMyRegistrations(ctx context.Context, actor Actor) ([]*RegistrationWithEvent, error)
}
