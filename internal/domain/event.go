package domain

import (
	"context"
	"time"
)

// Schedule is the single time slot of an event. End is optional: an
// open-ended event only reserves its start instant.
// swagger:model Schedule
type Schedule struct {
	EventID string     `json:"event_id"`
	Start   time.Time  `json:"start"`
	End     *time.Time `json:"end,omitempty"`
}

// Event represents an event that users can register for.
// Capacity nil means unlimited. VenueID nil means the venue is still to be decided.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Capacity    *int      `json:"capacity"`
	OrganizerID string    `json:"organizer_id"`
	VenueID     *string   `json:"venue_id"`
	Schedule    *Schedule `json:"schedule"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, description string, capacity *int, organizerID string, venueID *string, schedule *Schedule, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Capacity:    capacity,
		OrganizerID: organizerID,
		VenueID:     venueID,
		Schedule:    schedule,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// IsActive reports whether the event has not ended at now. Events without a
// schedule or without an end are always active.
func (e *Event) IsActive(now time.Time) bool {
	if e.Schedule == nil || e.Schedule.End == nil {
		return true
	}
	return e.Schedule.End.After(now)
}

// EventDetail bundles an event with its venue, organizer and current registration count.
// swagger:model EventDetail
type EventDetail struct {
	Event           *Event `json:"event"`
	Venue           *Venue `json:"venue"`
	OrganizerName   string `json:"organizer_name"`
	OrganizerEmail  string `json:"organizer_email"`
	RegisteredCount int    `json:"registered_count"`
}

// EventInput carries the editable fields of an event for create and update.
// On update a nil Start keeps the current schedule.
type EventInput struct {
	Title       string
	Description string
	Capacity    *int
	VenueID     *string
	Start       *time.Time
	End         *time.Time
}

// EventFilter narrows event listings.
type EventFilter struct {
	// Query matches title, description or venue name (case-insensitive substring).
	Query string
	// ActiveOnly drops events whose schedule ended at or before Now.
	ActiveOnly bool
	Now        time.Time
	Pagination PaginationParams
}

// EventRepository defines the interface for event storage. Create and Update
// persist the event row and its schedule together.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetForUpdate loads the event and, inside a transaction, locks it until commit.
	GetForUpdate(ctx context.Context, id string) (*Event, error)
	// Update overwrites the event row and replaces its schedule with event.Schedule.
	Update(ctx context.Context, event *Event) error
	// Delete removes the event, its schedule and its registrations.
	Delete(ctx context.Context, id string) error
	// List returns one page of events ordered by schedule start (unscheduled last) and the total match count.
	List(ctx context.Context, filter EventFilter) ([]*Event, int, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	// ListVenueBookings returns every scheduled event at the venue.
	ListVenueBookings(ctx context.Context, venueID string) ([]VenueBooking, error)
	// LockVenue serializes admissions for one venue until the surrounding transaction ends.
	LockVenue(ctx context.Context, venueID string) error
	Count(ctx context.Context) (int, error)
}

// EventService defines the business logic around events.
type EventService interface {
	CreateEvent(ctx context.Context, actor Actor, input EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, actor Actor, eventID string, input EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, actor Actor, eventID string) error
	GetEvent(ctx context.Context, eventID string) (*EventDetail, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*EventDetail, int, error)
	ListOrganizerEvents(ctx context.Context, actor Actor) ([]*EventDetail, error)
	ListAttendees(ctx context.Context, actor Actor, eventID string) ([]*Attendee, error)
	RemoveAttendee(ctx context.Context, actor Actor, eventID, userID string) (bool, error)
}
