package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository/sqltx"
)

// RegistrationRepository implements domain.RegistrationRepository.
type RegistrationRepository struct {
	db *sql.DB
}

var _ domain.RegistrationRepository = (*RegistrationRepository)(nil)

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	id := uuid.NewString()
	_, err := sqltx.Conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO registrations (id, event_id, user_id, created_at) VALUES (?, ?, ?, ?)`,
		id, reg.EventID, reg.UserID, toMillis(reg.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	reg.ID = id
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	err := sqltx.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = ? AND user_id = ?)`,
		eventID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := sqltx.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = ?`, eventID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, eventID, userID string) (bool, error) {
	res, err := sqltx.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM registrations WHERE event_id = ? AND user_id = ?`, eventID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	return n > 0, nil
}

// ListAttendees orders by registration time; rowid keeps insertion order for equal timestamps.
func (r *RegistrationRepository) ListAttendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	rows, err := sqltx.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.role, r.created_at
		 FROM registrations r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.event_id = ?
		 ORDER BY r.created_at, r.rowid`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	attendees := []*domain.Attendee{}
	for rows.Next() {
		var (
			a            domain.Attendee
			role         string
			registeredAt int64
		)
		if err := rows.Scan(&a.UserID, &a.Name, &a.Email, &role, &registeredAt); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		a.Role = domain.Role(role)
		a.RegisteredAt = fromMillis(registeredAt)
		attendees = append(attendees, &a)
	}
	return attendees, rows.Err()
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	rows, err := sqltx.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT id, event_id, user_id, created_at FROM registrations WHERE user_id = ? ORDER BY created_at, rowid`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	defer rows.Close()

	regs := []*domain.Registration{}
	for rows.Next() {
		var (
			reg       domain.Registration
			createdAt int64
		)
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.CreatedAt = fromMillis(createdAt)
		regs = append(regs, &reg)
	}
	return regs, rows.Err()
}

func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqltx.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *RegistrationRepository) CountEventsWithRegistrations(ctx context.Context) (int, error) {
	var n int
	err := sqltx.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT event_id) FROM registrations`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events with registrations: %w", err)
	}
	return n, nil
}
