package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository/sqltx"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := sqltx.Conn(ctx, r.DB).QueryRowContext(ctx, query, reg.EventID, reg.UserID, reg.CreatedAt).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (r *eventRegistrationRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`
	var exists bool
	if err := sqltx.Conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

func (r *eventRegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := sqltx.Conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *eventRegistrationRepository) Delete(ctx context.Context, eventID, userID string) (bool, error) {
	res, err := sqltx.Conn(ctx, r.DB).ExecContext(ctx,
		`DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *eventRegistrationRepository) ListAttendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	query := `
		SELECT u.id, u.name, u.email, u.role, r.created_at
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC, r.seq ASC
	`
	rows, err := sqltx.Conn(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	attendees := []*domain.Attendee{}
	for rows.Next() {
		a := &domain.Attendee{}
		var role string
		if err := rows.Scan(&a.UserID, &a.Name, &a.Email, &role, &a.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		a.Role = domain.Role(role)
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *eventRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, created_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := sqltx.Conn(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	defer rows.Close()

	regs := []*domain.Registration{}
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *eventRegistrationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqltx.Conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

func (r *eventRegistrationRepository) CountEventsWithRegistrations(ctx context.Context) (int, error) {
	var n int
	if err := sqltx.Conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(DISTINCT event_id) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events with registrations: %w", err)
	}
	return n, nil
}
