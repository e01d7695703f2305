package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/internal/domain"
)

var base = time.Date(2025, 11, 25, 18, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func seedUser(t *testing.T, s *Store, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u := domain.NewUser(name, email, role, base)
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func seedEvent(t *testing.T, s *Store, title string, organizerID string, venueID *string, start *time.Time, end *time.Time) *domain.Event {
	t.Helper()
	var sch *domain.Schedule
	if start != nil {
		sch = &domain.Schedule{Start: *start, End: end}
	}
	e := domain.NewEvent(title, "", nil, organizerID, venueID, sch, base, base)
	require.NoError(t, s.Events().Create(context.Background(), e))
	return e
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	s := New()
	seedUser(t, s, "Ann", "ann@example.com", domain.RoleAttendee)

	err := s.Users().Create(context.Background(), domain.NewUser("Other", "ANN@example.com", domain.RoleAttendee, base))
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	got, err := s.Users().GetByEmail(context.Background(), "Ann@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	_, err = s.Users().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ListPaginates(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i, name := range []string{"a", "b", "c"} {
		u := domain.NewUser(name, name+"@example.com", domain.RoleAttendee, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.Users().Create(ctx, u))
	}

	page, total, err := s.Users().List(ctx, domain.PaginationParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].Name)

	page, _, err = s.Users().List(ctx, domain.PaginationParams{Page: 5, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestUserRepository_DeleteCascadesRegistrations(t *testing.T) {
	s := New()
	ctx := context.Background()
	org := seedUser(t, s, "Org", "org@example.com", domain.RoleOrganizer)
	u := seedUser(t, s, "Ann", "ann@example.com", domain.RoleAttendee)
	ev := seedEvent(t, s, "Meetup", org.ID, nil, nil, nil)
	require.NoError(t, s.Registrations().Create(ctx, domain.NewRegistration(ev.ID, u.ID, base)))

	require.NoError(t, s.Users().Delete(ctx, u.ID))

	n, err := s.Registrations().CountByEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.ErrorIs(t, s.Users().Delete(ctx, u.ID), domain.ErrUserNotFound)
}

func TestEventRepository_ListOrdersAndFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	org := seedUser(t, s, "Org", "org@example.com", domain.RoleOrganizer)
	hall := domain.NewVenue("Main Hall", "123 Main St", 200, base, base)
	require.NoError(t, s.Venues().Create(ctx, hall))

	later := base.Add(48 * time.Hour)
	past := base.Add(-48 * time.Hour)
	seedEvent(t, s, "Unscheduled", org.ID, nil, nil, nil)
	seedEvent(t, s, "Later", org.ID, nil, &later, nil)
	seedEvent(t, s, "Soon", org.ID, &hall.ID, &base, ptr(base.Add(2*time.Hour)))
	seedEvent(t, s, "Finished", org.ID, nil, &past, ptr(past.Add(time.Hour)))

	all, total, err := s.Events().List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	titles := make([]string, 0, len(all))
	for _, e := range all {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"Finished", "Soon", "Later", "Unscheduled"}, titles)

	active, total, err := s.Events().List(ctx, domain.EventFilter{ActiveOnly: true, Now: base})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "Soon", active[0].Title)

	byVenue, _, err := s.Events().List(ctx, domain.EventFilter{Query: "main hall"})
	require.NoError(t, err)
	require.Len(t, byVenue, 1)
	assert.Equal(t, "Soon", byVenue[0].Title)
}

func TestEventRepository_ReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	ev := seedEvent(t, s, "Meetup", "org", nil, &base, ptr(base.Add(time.Hour)))

	got, err := s.Events().GetByID(ctx, ev.ID)
	require.NoError(t, err)
	*got.Schedule.End = base.Add(10 * time.Hour)
	got.Title = "changed"

	again, err := s.Events().GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meetup", again.Title)
	assert.Equal(t, base.Add(time.Hour), *again.Schedule.End)
}

func TestEventRepository_DeleteCascades(t *testing.T) {
	s := New()
	ctx := context.Background()
	ev := seedEvent(t, s, "Meetup", "org", nil, nil, nil)
	other := seedEvent(t, s, "Other", "org", nil, nil, nil)
	require.NoError(t, s.Registrations().Create(ctx, domain.NewRegistration(ev.ID, "u1", base)))
	require.NoError(t, s.Registrations().Create(ctx, domain.NewRegistration(other.ID, "u1", base)))

	require.NoError(t, s.Events().Delete(ctx, ev.ID))

	total, err := s.Registrations().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	_, err = s.Events().GetByID(ctx, ev.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationRepository_AttendeeOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := seedUser(t, s, "A", "a@example.com", domain.RoleAttendee)
	b := seedUser(t, s, "B", "b@example.com", domain.RoleAttendee)
	c := seedUser(t, s, "C", "c@example.com", domain.RoleAttendee)
	ev := seedEvent(t, s, "Meetup", "org", nil, nil, nil)

	// b and c share a timestamp; insertion order breaks the tie.
	require.NoError(t, s.Registrations().Create(ctx, domain.NewRegistration(ev.ID, b.ID, base.Add(time.Minute))))
	require.NoError(t, s.Registrations().Create(ctx, domain.NewRegistration(ev.ID, c.ID, base.Add(time.Minute))))
	require.NoError(t, s.Registrations().Create(ctx, domain.NewRegistration(ev.ID, a.ID, base)))

	attendees, err := s.Registrations().ListAttendees(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{attendees[0].Name, attendees[1].Name, attendees[2].Name})

	removed, err := s.Registrations().Delete(ctx, ev.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.Registrations().Delete(ctx, ev.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	withRegs, err := s.Registrations().CountEventsWithRegistrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, withRegs)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Users().Create(ctx, domain.NewUser("Ann", "ann@example.com", domain.RoleAttendee, base)); err != nil {
			return err
		}
		// Nested calls join the outer transaction instead of deadlocking.
		return s.WithinTx(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	_, total, err := s.Users().List(ctx, domain.PaginationParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStore_WithinTxRollsBackOnPanic(t *testing.T) {
	s := New()
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_ = s.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.Users().Create(ctx, domain.NewUser("Ann", "ann@example.com", domain.RoleAttendee, base)); err != nil {
				return err
			}
			panic("boom")
		})
	})

	_, total, err := s.Users().List(ctx, domain.PaginationParams{})
	require.NoError(t, err)
	assert.Zero(t, total)

	// The mutex was released, so the store stays usable.
	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context) error {
		return s.Users().Create(ctx, domain.NewUser("Bob", "bob@example.com", domain.RoleAttendee, base))
	}))
}
