package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"eventmanager/internal/domain"
)

// RegistrationRepository implements domain.RegistrationRepository.
// Registrations are kept in insertion order, which is registration order.
type RegistrationRepository struct {
	s *Store
}

var _ domain.RegistrationRepository = (*RegistrationRepository)(nil)

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	defer r.s.lock(ctx)()

	reg.ID = uuid.NewString()
	r.s.registrations = append(slices.Clip(r.s.registrations), *reg)
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	defer r.s.lock(ctx)()

	return slices.ContainsFunc(r.s.registrations, func(reg domain.Registration) bool {
		return reg.EventID == eventID && reg.UserID == userID
	}), nil
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, eventID, userID string) (bool, error) {
	defer r.s.lock(ctx)()

	before := len(r.s.registrations)
	r.s.registrations = slices.DeleteFunc(slices.Clone(r.s.registrations), func(reg domain.Registration) bool {
		return reg.EventID == eventID && reg.UserID == userID
	})
	return len(r.s.registrations) < before, nil
}

func (r *RegistrationRepository) ListAttendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	defer r.s.lock(ctx)()

	var regs []domain.Registration
	for _, reg := range r.s.registrations {
		if reg.EventID == eventID {
			regs = append(regs, reg)
		}
	}
	// Stable sort keeps insertion order for equal timestamps.
	slices.SortStableFunc(regs, func(a, b domain.Registration) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	attendees := make([]*domain.Attendee, 0, len(regs))
	for _, reg := range regs {
		u, ok := r.s.users[reg.UserID]
		if !ok {
			continue
		}
		attendees = append(attendees, &domain.Attendee{
			UserID:       u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			RegisteredAt: reg.CreatedAt,
		})
	}
	return attendees, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	defer r.s.lock(ctx)()

	regs := []*domain.Registration{}
	for _, reg := range r.s.registrations {
		if reg.UserID == userID {
			regs = append(regs, &reg)
		}
	}
	return regs, nil
}

func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()
	return len(r.s.registrations), nil
}

func (r *RegistrationRepository) CountEventsWithRegistrations(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()

	seen := make(map[string]struct{})
	for _, reg := range r.s.registrations {
		seen[reg.EventID] = struct{}{}
	}
	return len(seen), nil
}
