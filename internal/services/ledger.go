package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"eventmanager/internal/domain"
)

type registrationLedger struct {
	tx               domain.Transactor
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	logger           *slog.Logger
	contextTimeout   time.Duration
}

// NewRegistrationLedger creates the ledger. Admissions run inside tx so the
// existence, duplicate and capacity checks see the same state as the insert.
func NewRegistrationLedger(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationLedger {
	return &registrationLedger{
		tx:               tx,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		logger:           loggerOrDiscard(logger),
		contextTimeout:   timeout,
	}
}

func (l *registrationLedger) Register(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	var reg *domain.Registration
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		event, err := l.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}

		registered, err := l.registrationRepo.Exists(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("check registration: %w", err)
		}
		if registered {
			return domain.ErrAlreadyRegistered
		}

		if event.Capacity != nil {
			count, err := l.registrationRepo.CountByEvent(ctx, eventID)
			if err != nil {
				return fmt.Errorf("count registrations: %w", err)
			}
			if count >= *event.Capacity {
				return domain.ErrEventFull
			}
		}

		reg = domain.NewRegistration(eventID, userID, time.Now().UTC())
		if err := l.registrationRepo.Create(ctx, reg); err != nil {
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return err
			}
			return fmt.Errorf("create registration: %w", err)
		}
		return nil
	})
	if err != nil {
		l.logger.DebugContext(ctx, "registration rejected", "event_id", eventID, "user_id", userID, "error", err)
		return nil, err
	}
	l.logger.InfoContext(ctx, "registration admitted", "event_id", eventID, "user_id", userID, "registration_id", reg.ID)
	return reg, nil
}

func (l *registrationLedger) Unregister(ctx context.Context, userID, eventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	removed, err := l.registrationRepo.Delete(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	if removed {
		l.logger.InfoContext(ctx, "registration cancelled", "event_id", eventID, "user_id", userID)
	}
	return removed, nil
}

// RemoveAttendee deletes targetUserID's registration. actorID is recorded in
// the log only; the caller has already checked the actor's rights.
func (l *registrationLedger) RemoveAttendee(ctx context.Context, actorID, targetUserID, eventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	removed, err := l.registrationRepo.Delete(ctx, eventID, targetUserID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	if removed {
		l.logger.InfoContext(ctx, "attendee removed", "event_id", eventID, "user_id", targetUserID, "actor_id", actorID)
	}
	return removed, nil
}

func (l *registrationLedger) ListAttendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	attendees, err := l.registrationRepo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (l *registrationLedger) RegisteredCount(ctx context.Context, eventID string) (int, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	n, err := l.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// IsFull reports whether the event reached its capacity. Events without a
// capacity are never full.
func (l *registrationLedger) IsFull(ctx context.Context, eventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	event, err := l.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrEventNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	if event.Capacity == nil {
		return false, nil
	}
	n, err := l.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return false, fmt.Errorf("count registrations: %w", err)
	}
	return n >= *event.Capacity, nil
}

func (l *registrationLedger) IsRegistered(ctx context.Context, userID, eventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	ok, err := l.registrationRepo.Exists(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return ok, nil
}

// ListUserRegistrations returns the user's registrations with their events,
// ordered by event start with unscheduled events last.
func (l *registrationLedger) ListUserRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := withTimeout(ctx, l.contextTimeout)
	defer cancel()

	regs, err := l.registrationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}

	out := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		event, err := l.eventRepo.GetByID(ctx, reg.EventID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get event: %w", err)
		}
		out = append(out, &domain.RegistrationWithEvent{Registration: reg, Event: event})
	}
	slices.SortStableFunc(out, func(a, b *domain.RegistrationWithEvent) int {
		return compareSchedules(a.Event.Schedule, b.Event.Schedule)
	})
	return out, nil
}

// compareSchedules orders by start time with a nil schedule sorting last.
func compareSchedules(a, b *domain.Schedule) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Start.Compare(b.Start)
}
