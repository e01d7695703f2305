package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository/memory"
)

// nov25 returns 2025-11-25 at the given hour, UTC.
func nov25(hour int) time.Time {
	return time.Date(2025, 11, 25, hour, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store     *memory.Store
	ledger    domain.RegistrationLedger
	checker   domain.AvailabilityChecker
	events    domain.EventService
	attendees domain.AttendeeService
	venues    domain.VenueService
	users     domain.UserService
	stats     domain.StatsService
	admin     domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	checker := NewAvailabilityChecker(store.Events())
	ledger := NewRegistrationLedger(store, store.Events(), store.Registrations(), nil, time.Second)
	f := &fixture{
		store:     store,
		ledger:    ledger,
		checker:   checker,
		events:    NewEventService(store, store.Events(), store.Venues(), store.Users(), ledger, checker, nil, time.Second),
		attendees: NewAttendeeService(store.Events(), ledger, time.Second),
		venues:    NewVenueService(store.Venues(), checker, nil, time.Second),
		users:     NewUserService(store.Users(), nil, time.Second),
		stats:     NewStatsService(store.Events(), store.Users(), store.Venues(), store.Registrations(), time.Second),
	}
	f.admin = f.user(t, "admin", domain.RoleAdmin)
	return f
}

// user stores a user and returns it as an actor.
func (f *fixture) user(t *testing.T, name string, role domain.Role) domain.Actor {
	t.Helper()
	u := domain.NewUser(name, name+"@example.com", role, time.Now().UTC())
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return domain.Actor{UserID: u.ID, Role: u.Role}
}

func (f *fixture) venue(t *testing.T, name string) *domain.Venue {
	t.Helper()
	v, err := f.venues.CreateVenue(context.Background(), f.admin, name, "", 100)
	require.NoError(t, err)
	return v
}

func (f *fixture) event(t *testing.T, organizer domain.Actor, input domain.EventInput) *domain.Event {
	t.Helper()
	if input.Title == "" {
		input.Title = "Event"
	}
	e, err := f.events.CreateEvent(context.Background(), organizer, input)
	require.NoError(t, err)
	return e
}
