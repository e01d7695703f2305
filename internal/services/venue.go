package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventmanager/internal/domain"
)

type venueService struct {
	venueRepo      domain.VenueRepository
	checker        domain.AvailabilityChecker
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewVenueService(venueRepo domain.VenueRepository, checker domain.AvailabilityChecker, logger *slog.Logger, timeout time.Duration) domain.VenueService {
	return &venueService{
		venueRepo:      venueRepo,
		checker:        checker,
		logger:         loggerOrDiscard(logger),
		contextTimeout: timeout,
	}
}

func validateVenue(name string, capacity int) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func (s *venueService) CreateVenue(ctx context.Context, actor domain.Actor, name, address string, capacity int) (*domain.Venue, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name, address = strings.TrimSpace(name), strings.TrimSpace(address)
	if err := validateVenue(name, capacity); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	venue := domain.NewVenue(name, address, capacity, now, now)
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	s.logger.InfoContext(ctx, "venue created", "venue_id", venue.ID, "actor_id", actor.UserID)
	return venue, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, actor domain.Actor, venueID, name, address string, capacity int) (*domain.Venue, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name, address = strings.TrimSpace(name), strings.TrimSpace(address)
	if err := validateVenue(name, capacity); err != nil {
		return nil, err
	}
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	venue.Name = name
	venue.Address = address
	venue.Capacity = capacity
	venue.UpdatedAt = time.Now().UTC()
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) GetVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// CheckAvailability answers IsVenueAvailable for an existing venue.
func (s *venueService) CheckAvailability(ctx context.Context, venueID string, start time.Time, end *time.Time, excludeEventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if end != nil && end.Before(start) {
		return false, fmt.Errorf("%w: end must not be before start", domain.ErrInvalidInput)
	}
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrVenueNotFound
		}
		return false, fmt.Errorf("get venue: %w", err)
	}
	return s.checker.IsVenueAvailable(ctx, venueID, start, end, excludeEventID)
}
