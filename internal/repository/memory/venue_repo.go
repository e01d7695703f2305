package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"eventmanager/internal/domain"
)

// VenueRepository implements domain.VenueRepository.
type VenueRepository struct {
	s *Store
}

var _ domain.VenueRepository = (*VenueRepository)(nil)

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	defer r.s.lock(ctx)()

	v.ID = uuid.NewString()
	r.s.venues[v.ID] = *v
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	defer r.s.lock(ctx)()

	v, ok := r.s.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *VenueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	defer r.s.lock(ctx)()

	venues := make([]*domain.Venue, 0, len(r.s.venues))
	for _, v := range r.s.venues {
		venues = append(venues, &v)
	}
	slices.SortFunc(venues, func(a, b *domain.Venue) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return venues, nil
}

func (r *VenueRepository) Update(ctx context.Context, v *domain.Venue) error {
	defer r.s.lock(ctx)()

	current, ok := r.s.venues[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	v.CreatedAt = current.CreatedAt
	r.s.venues[v.ID] = *v
	return nil
}

func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()
	return len(r.s.venues), nil
}
