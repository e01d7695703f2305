package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository/sqltx"
)

// VenueRepository implements domain.VenueRepository.
type VenueRepository struct {
	db *sql.DB
}

var _ domain.VenueRepository = (*VenueRepository)(nil)

const venueColumns = `id, name, address, capacity, created_at, updated_at`

func scanVenue(row interface{ Scan(...any) error }) (*domain.Venue, error) {
	var (
		v                    domain.Venue
		createdAt, updatedAt int64
	)
	if err := row.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	v.CreatedAt = fromMillis(createdAt)
	v.UpdatedAt = fromMillis(updatedAt)
	return &v, nil
}

func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	id := uuid.NewString()
	_, err := sqltx.Conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO venues (id, name, address, capacity, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, v.Name, v.Address, v.Capacity, toMillis(v.CreatedAt), toMillis(v.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	v.ID = id
	return nil
}

func (r *VenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	row := sqltx.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (r *VenueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	rows, err := sqltx.Conn(ctx, r.db).QueryContext(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	venues := []*domain.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *VenueRepository) Update(ctx context.Context, v *domain.Venue) error {
	res, err := sqltx.Conn(ctx, r.db).ExecContext(ctx,
		`UPDATE venues SET name = ?, address = ?, capacity = ?, updated_at = ? WHERE id = ?`,
		v.Name, v.Address, v.Capacity, toMillis(v.UpdatedAt), v.ID,
	)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VenueRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqltx.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count venues: %w", err)
	}
	return n, nil
}
