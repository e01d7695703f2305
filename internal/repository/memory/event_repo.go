package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"eventmanager/internal/domain"
)

// EventRepository implements domain.EventRepository.
type EventRepository struct {
	s *Store
}

var _ domain.EventRepository = (*EventRepository)(nil)

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	defer r.s.lock(ctx)()

	e.ID = uuid.NewString()
	if e.Schedule != nil {
		e.Schedule.EventID = e.ID
	}
	r.s.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneEvent(&e)
	return &out, nil
}

// GetForUpdate is GetByID: the transaction already holds the store mutex.
func (r *EventRepository) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	defer r.s.lock(ctx)()

	current, ok := r.s.events[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	e.CreatedAt = current.CreatedAt
	if e.Schedule != nil {
		e.Schedule.EventID = e.ID
	}
	r.s.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.events, id)
	r.s.registrations = slices.DeleteFunc(slices.Clone(r.s.registrations), func(reg domain.Registration) bool {
		return reg.EventID == id
	})
	return nil
}

func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	defer r.s.lock(ctx)()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	var matched []*domain.Event
	for _, e := range r.s.events {
		if filter.ActiveOnly && !e.IsActive(filter.Now) {
			continue
		}
		if query != "" && !r.matches(&e, query) {
			continue
		}
		out := cloneEvent(&e)
		matched = append(matched, &out)
	}
	sortEvents(matched)
	return paginate(matched, filter.Pagination), len(matched), nil
}

func (r *EventRepository) matches(e *domain.Event, query string) bool {
	if strings.Contains(strings.ToLower(e.Title), query) || strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	if e.VenueID == nil {
		return false
	}
	v, ok := r.s.venues[*e.VenueID]
	return ok && strings.Contains(strings.ToLower(v.Name), query)
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	defer r.s.lock(ctx)()

	events := []*domain.Event{}
	for _, e := range r.s.events {
		if e.OrganizerID == organizerID {
			out := cloneEvent(&e)
			events = append(events, &out)
		}
	}
	sortEvents(events)
	return events, nil
}

func (r *EventRepository) ListVenueBookings(ctx context.Context, venueID string) ([]domain.VenueBooking, error) {
	defer r.s.lock(ctx)()

	var bookings []domain.VenueBooking
	for _, e := range r.s.events {
		if e.VenueID == nil || *e.VenueID != venueID || e.Schedule == nil {
			continue
		}
		bookings = append(bookings, domain.VenueBooking{
			EventID: e.ID,
			VenueID: venueID,
			Start:   e.Schedule.Start,
			End:     e.Schedule.End,
		})
	}
	return bookings, nil
}

// LockVenue is a no-op: the transaction already holds the store mutex.
func (r *EventRepository) LockVenue(ctx context.Context, venueID string) error {
	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()
	return len(r.s.events), nil
}

// sortEvents orders by schedule start with unscheduled events last.
func sortEvents(events []*domain.Event) {
	slices.SortFunc(events, func(a, b *domain.Event) int {
		switch {
		case a.Schedule == nil && b.Schedule != nil:
			return 1
		case a.Schedule != nil && b.Schedule == nil:
			return -1
		case a.Schedule != nil && b.Schedule != nil:
			if c := a.Schedule.Start.Compare(b.Schedule.Start); c != 0 {
				return c
			}
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func cloneEvent(e *domain.Event) domain.Event {
	out := *e
	if e.Capacity != nil {
		c := *e.Capacity
		out.Capacity = &c
	}
	if e.VenueID != nil {
		v := *e.VenueID
		out.VenueID = &v
	}
	if e.Schedule != nil {
		sch := *e.Schedule
		if e.Schedule.End != nil {
			end := *e.Schedule.End
			sch.End = &end
		}
		out.Schedule = &sch
	}
	return out
}
