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

type eventService struct {
	tx             domain.Transactor
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	userRepo       domain.UserRepository
	ledger         domain.RegistrationLedger
	checker        domain.AvailabilityChecker
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewEventService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	userRepo domain.UserRepository,
	ledger domain.RegistrationLedger,
	checker domain.AvailabilityChecker,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		tx:             tx,
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		userRepo:       userRepo,
		ledger:         ledger,
		checker:        checker,
		logger:         loggerOrDiscard(logger),
		contextTimeout: timeout,
	}
}

func validateEventInput(input *domain.EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.Capacity != nil && *input.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}
	if input.VenueID != nil && strings.TrimSpace(*input.VenueID) == "" {
		input.VenueID = nil
	}
	if input.End != nil {
		if input.Start == nil {
			return fmt.Errorf("%w: end requires a start", domain.ErrInvalidInput)
		}
		if input.End.Before(*input.Start) {
			return fmt.Errorf("%w: end must not be before start", domain.ErrInvalidInput)
		}
	}
	return nil
}

// checkVenue verifies the venue exists and, when the event is scheduled, that
// the slot is free. It must run inside the transaction that persists the event.
func (s *eventService) checkVenue(ctx context.Context, venueID *string, sch *domain.Schedule, excludeEventID string) error {
	if venueID == nil {
		return nil
	}
	if _, err := s.venueRepo.GetByID(ctx, *venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrVenueNotFound
		}
		return fmt.Errorf("get venue: %w", err)
	}
	if sch == nil {
		return nil
	}
	if err := s.eventRepo.LockVenue(ctx, *venueID); err != nil {
		return err
	}
	available, err := s.checker.IsVenueAvailable(ctx, *venueID, sch.Start, sch.End, excludeEventID)
	if err != nil {
		return fmt.Errorf("check venue availability: %w", err)
	}
	if !available {
		return domain.ErrVenueConflict
	}
	return nil
}

func scheduleFrom(input domain.EventInput) *domain.Schedule {
	if input.Start == nil {
		return nil
	}
	return &domain.Schedule{Start: input.Start.UTC(), End: utcPtr(input.End)}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if actor.UserID == "" || actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := domain.NewEvent(input.Title, input.Description, input.Capacity, actor.UserID, input.VenueID, scheduleFrom(input), now, now)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkVenue(ctx, event.VenueID, event.Schedule, ""); err != nil {
			return err
		}
		if err := s.eventRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		if actor.Role == domain.RoleAttendee {
			if err := s.userRepo.UpdateRole(ctx, actor.UserID, domain.RoleOrganizer); err != nil {
				return fmt.Errorf("promote organizer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "organizer_id", actor.UserID)
	return event, nil
}

// UpdateEvent replaces the editable fields. A nil input.Start keeps the
// current schedule. Lowering capacity below the current registration count is
// allowed; the existing registrations stay.
func (s *eventService) UpdateEvent(ctx context.Context, actor domain.Actor, eventID string, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEventInput(&input); err != nil {
		return nil, err
	}

	var event *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		if !actor.CanManage(current.OrganizerID) {
			return domain.ErrForbidden
		}

		event = current
		event.Title = input.Title
		event.Description = input.Description
		event.Capacity = input.Capacity
		event.VenueID = input.VenueID
		if sch := scheduleFrom(input); sch != nil {
			event.Schedule = sch
		}
		event.UpdatedAt = time.Now().UTC()

		if err := s.checkVenue(ctx, event.VenueID, event.Schedule, event.ID); err != nil {
			return err
		}
		if event.Capacity != nil {
			count, err := s.ledger.RegisteredCount(ctx, event.ID)
			if err != nil {
				return err
			}
			if count > *event.Capacity {
				s.logger.WarnContext(ctx, "capacity lowered below registrations",
					"event_id", event.ID, "capacity", *event.Capacity, "registered", count)
			}
		}
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "event updated", "event_id", event.ID, "actor_id", actor.UserID)
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor domain.Actor, eventID string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.manageable(ctx, actor, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", eventID, "actor_id", actor.UserID)
	return nil
}

// manageable loads the event and checks that actor is its organizer or an admin.
func (s *eventService) manageable(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !actor.CanManage(event.OrganizerID) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.EventDetail, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.detail(ctx, event)
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.EventDetail, int, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.ActiveOnly && filter.Now.IsZero() {
		filter.Now = time.Now().UTC()
	}
	events, total, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	details, err := s.details(ctx, events)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func (s *eventService) ListOrganizerEvents(ctx context.Context, actor domain.Actor) ([]*domain.EventDetail, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizer(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}
	return s.details(ctx, events)
}

func (s *eventService) ListAttendees(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Attendee, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.manageable(ctx, actor, eventID); err != nil {
		return nil, err
	}
	return s.ledger.ListAttendees(ctx, eventID)
}

func (s *eventService) RemoveAttendee(ctx context.Context, actor domain.Actor, eventID, userID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.manageable(ctx, actor, eventID); err != nil {
		return false, err
	}
	return s.ledger.RemoveAttendee(ctx, actor.UserID, userID, eventID)
}

func (s *eventService) details(ctx context.Context, events []*domain.Event) ([]*domain.EventDetail, error) {
	out := make([]*domain.EventDetail, 0, len(events))
	for _, e := range events {
		d, err := s.detail(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// detail joins the event with its venue, organizer and registration count.
// A missing venue or organizer leaves the corresponding fields empty.
func (s *eventService) detail(ctx context.Context, event *domain.Event) (*domain.EventDetail, error) {
	d := &domain.EventDetail{Event: event}
	if event.VenueID != nil {
		venue, err := s.venueRepo.GetByID(ctx, *event.VenueID)
		switch {
		case err == nil:
			d.Venue = venue
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get venue: %w", err)
		}
	}
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	switch {
	case err == nil:
		d.OrganizerName = organizer.Name
		d.OrganizerEmail = organizer.Email
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	count, err := s.ledger.RegisteredCount(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	d.RegisteredCount = count
	return d, nil
}
