package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventmanager/internal/domain"
)

type attendeeService struct {
	eventRepo      domain.EventRepository
	ledger         domain.RegistrationLedger
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService that admits registrations through ledger.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	ledger domain.RegistrationLedger,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		ledger:         ledger,
		contextTimeout: timeout,
	}
}

// Register signs the actor up for the event. Admins cannot register and an
// organizer cannot register for their own event.
func (s *attendeeService) Register(ctx context.Context, actor domain.Actor, eventID string) (*domain.Registration, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor.UserID == "" || actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID == actor.UserID {
		return nil, domain.ErrForbidden
	}
	return s.ledger.Register(ctx, actor.UserID, eventID)
}

func (s *attendeeService) Unregister(ctx context.Context, actor domain.Actor, eventID string) (bool, error) {
	if actor.UserID == "" {
		return false, domain.ErrForbidden
	}
	return s.ledger.Unregister(ctx, actor.UserID, eventID)
}

func (s *attendeeService) ListMyRegistrations(ctx context.Context, actor domain.Actor) ([]*domain.RegistrationWithEvent, error) {
	if actor.UserID == "" {
		return nil, domain.ErrForbidden
	}
	return s.ledger.ListUserRegistrations(ctx, actor.UserID)
}
