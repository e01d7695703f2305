package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"eventmanager/internal/domain"
)

type statsService struct {
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	venueRepo        domain.VenueRepository
	registrationRepo domain.RegistrationRepository
	contextTimeout   time.Duration
}

func NewStatsService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	venueRepo domain.VenueRepository,
	registrationRepo domain.RegistrationRepository,
	timeout time.Duration,
) domain.StatsService {
	return &statsService{
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		venueRepo:        venueRepo,
		registrationRepo: registrationRepo,
		contextTimeout:   timeout,
	}
}

// Statistics runs the independent counts concurrently. The totals are not a
// consistent snapshot across tables.
func (s *statsService) Statistics(ctx context.Context, actor domain.Actor) (*domain.Statistics, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var (
		stats  domain.Statistics
		byRole map[domain.Role]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if stats.TotalEvents, err = s.eventRepo.Count(gctx); err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stats.TotalVenues, err = s.venueRepo.Count(gctx); err != nil {
			return fmt.Errorf("count venues: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stats.TotalRegistrations, err = s.registrationRepo.Count(gctx); err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stats.EventsWithRegistrations, err = s.registrationRepo.CountEventsWithRegistrations(gctx); err != nil {
			return fmt.Errorf("count events with registrations: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if byRole, err = s.userRepo.CountByRole(gctx); err != nil {
			return fmt.Errorf("count users by role: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.AdminCount = byRole[domain.RoleAdmin]
	stats.OrganizerCount = byRole[domain.RoleOrganizer]
	stats.AttendeeCount = byRole[domain.RoleAttendee]
	for _, n := range byRole {
		stats.TotalUsers += n
	}
	return &stats, nil
}
