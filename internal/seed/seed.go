// Package seed loads the demo users, venues and events into an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository"
)

type seedEvent struct {
	title       string
	description string
	capacity    int
	venue       int // index into venues
	organizer   int // index into users
	start, end  time.Time
}

var (
	users = []struct {
		name, email string
		role        domain.Role
	}{
		{"Admin User", "admin@eventmanager.com", domain.RoleAdmin},
		{"Event Organizer", "organizer@eventmanager.com", domain.RoleOrganizer},
		{"John Attendee", "user@eventmanager.com", domain.RoleAttendee},
	}

	venues = []struct {
		name, address string
		capacity      int
	}{
		{"Main Hall", "123 Main St", 200},
		{"Room A", "45 Side Rd", 50},
		{"Conference Center", "789 Business Ave", 500},
	}

	events = []seedEvent{
		{"Community Meetup", "A friendly meetup for the community", 100, 0, 1,
			at(2025, time.November, 25, 18), at(2025, time.November, 25, 20)},
		{"Tech Workshop", "Skill-building workshop on latest technologies", 30, 1, 1,
			at(2025, time.November, 27, 9), at(2025, time.November, 27, 12)},
		{"Annual Conference", "Our biggest event of the year", 400, 2, 0,
			at(2025, time.December, 5, 9), at(2025, time.December, 5, 17)},
	}
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// Run inserts the demo data in one transaction. It does nothing when the
// store already holds users and reports whether it seeded.
func Run(ctx context.Context, logger *slog.Logger, repos *repository.Repositories) (bool, error) {
	seeded := false
	err := repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		counts, err := repos.Users.CountByRole(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		for _, n := range counts {
			if n > 0 {
				return nil
			}
		}

		now := time.Now().UTC()
		userIDs := make([]string, len(users))
		for i, u := range users {
			user := domain.NewUser(u.name, u.email, u.role, now)
			if err := repos.Users.Create(ctx, user); err != nil {
				return fmt.Errorf("create user %s: %w", u.email, err)
			}
			userIDs[i] = user.ID
		}

		venueIDs := make([]string, len(venues))
		for i, v := range venues {
			venue := domain.NewVenue(v.name, v.address, v.capacity, now, now)
			if err := repos.Venues.Create(ctx, venue); err != nil {
				return fmt.Errorf("create venue %s: %w", v.name, err)
			}
			venueIDs[i] = venue.ID
		}

		for _, e := range events {
			capacity := e.capacity
			venueID := venueIDs[e.venue]
			end := e.end
			event := domain.NewEvent(e.title, e.description, &capacity, userIDs[e.organizer], &venueID,
				&domain.Schedule{Start: e.start, End: &end}, now, now)
			if err := repos.Events.Create(ctx, event); err != nil {
				return fmt.Errorf("create event %s: %w", e.title, err)
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if seeded {
		logger.Info("seeded demo data", "users", len(users), "venues", len(venues), "events", len(events))
	}
	return seeded, nil
}
