package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"eventmanager/internal/domain"
)

// UserRepository implements domain.UserRepository.
type UserRepository struct {
	s *Store
}

var _ domain.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	defer r.s.lock(ctx)()

	email := strings.ToLower(u.Email)
	for _, existing := range r.s.users {
		if strings.ToLower(existing.Email) == email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.s.lock(ctx)()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.s.lock(ctx)()

	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if strings.ToLower(u.Email) == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	defer r.s.lock(ctx)()

	all := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, &u)
	}
	slices.SortFunc(all, func(a, b *domain.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return paginate(all, params), len(all), nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	defer r.s.lock(ctx)()

	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	r.s.users[id] = u
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	r.s.registrations = slices.DeleteFunc(slices.Clone(r.s.registrations), func(reg domain.Registration) bool {
		return reg.UserID == id
	})
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	defer r.s.lock(ctx)()

	counts := make(map[domain.Role]int)
	for _, u := range r.s.users {
		counts[u.Role]++
	}
	return counts, nil
}

// paginate returns the requested page of items. A non-positive page size returns everything.
func paginate[T any](items []T, params domain.PaginationParams) []T {
	if params.PageSize <= 0 {
		return items
	}
	offset := params.Offset()
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+params.PageSize, len(items))
	return items[offset:end]
}
