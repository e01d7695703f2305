package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository/sqltx"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventSelect = `
		SELECT e.id, e.title, e.description, e.capacity, e.organizer_id, e.venue_id,
			e.created_at, e.updated_at, s.start_at, s.end_at
		FROM events e
		LEFT JOIN schedules s ON s.event_id = e.id
	`

const eventOrder = ` ORDER BY s.start_at ASC NULLS LAST, e.created_at, e.id`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var (
		capacity   sql.NullInt64
		venueID    sql.NullString
		start, end sql.NullTime
	)
	err := row.Scan(&e.ID, &e.Title, &e.Description, &capacity, &e.OrganizerID, &venueID,
		&e.CreatedAt, &e.UpdatedAt, &start, &end)
	if err != nil {
		return nil, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if venueID.Valid {
		e.VenueID = &venueID.String
	}
	if start.Valid {
		e.Schedule = &domain.Schedule{EventID: e.ID, Start: start.Time}
		if end.Valid {
			e.Schedule.End = &end.Time
		}
	}
	return e, nil
}

func nullCapacity(c *int) sql.NullInt64 {
	if c == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*c), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, capacity, organizer_id, venue_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	q := sqltx.Conn(ctx, r.DB)
	err := q.QueryRowContext(ctx, query, e.Title, e.Description, nullCapacity(e.Capacity), e.OrganizerID,
		nullString(e.VenueID), e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return r.replaceSchedule(ctx, q, e)
}

func (r *eventRepository) replaceSchedule(ctx context.Context, q sqltx.Querier, e *domain.Event) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM schedules WHERE event_id = $1`, e.ID); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	if e.Schedule == nil {
		return nil
	}
	var end sql.NullTime
	if e.Schedule.End != nil {
		end = sql.NullTime{Time: *e.Schedule.End, Valid: true}
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO schedules (event_id, start_at, end_at) VALUES ($1, $2, $3)`,
		e.ID, e.Schedule.Start, end)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	e.Schedule.EventID = e.ID
	return nil
}

func (r *eventRepository) getOne(ctx context.Context, query, id string) (*domain.Event, error) {
	e, err := scanEvent(sqltx.Conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.getOne(ctx, eventSelect+` WHERE e.id = $1`, id)
}

// GetForUpdate locks the event row until the surrounding transaction ends.
func (r *eventRepository) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.getOne(ctx, eventSelect+` WHERE e.id = $1 FOR UPDATE OF e`, id)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, capacity = $3, organizer_id = $4, venue_id = $5, updated_at = $6
		WHERE id = $7
	`
	q := sqltx.Conn(ctx, r.DB)
	res, err := q.ExecContext(ctx, query, e.Title, e.Description, nullCapacity(e.Capacity), e.OrganizerID,
		nullString(e.VenueID), e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return r.replaceSchedule(ctx, q, e)
}

// Delete removes the event. Schedule and registrations cascade.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := sqltx.Conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	var (
		where []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		p := next(likePattern(query))
		where = append(where, `(e.title ILIKE `+p+` OR e.description ILIKE `+p+
			` OR e.venue_id IN (SELECT id FROM venues WHERE name ILIKE `+p+`))`)
	}
	if filter.ActiveOnly {
		where = append(where, `(s.end_at IS NULL OR s.end_at > `+next(filter.Now)+`)`)
	}
	cond := ""
	if len(where) > 0 {
		cond = ` WHERE ` + strings.Join(where, ` AND `)
	}

	q := sqltx.Conn(ctx, r.DB)
	var total int
	countQuery := `SELECT COUNT(*) FROM events e LEFT JOIN schedules s ON s.event_id = e.id` + cond
	if err := q.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	listQuery := eventSelect + cond + eventOrder
	if filter.Pagination.PageSize > 0 {
		listQuery += ` LIMIT ` + next(filter.Pagination.PageSize) + ` OFFSET ` + next(filter.Pagination.Offset())
	}
	events, err := r.list(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return r.list(ctx, eventSelect+` WHERE e.organizer_id = $1`+eventOrder, organizerID)
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := sqltx.Conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListVenueBookings(ctx context.Context, venueID string) ([]domain.VenueBooking, error) {
	query := `
		SELECT e.id, s.start_at, s.end_at
		FROM events e
		JOIN schedules s ON s.event_id = e.id
		WHERE e.venue_id = $1
	`
	rows, err := sqltx.Conn(ctx, r.DB).QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("list venue bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.VenueBooking
	for rows.Next() {
		b := domain.VenueBooking{VenueID: venueID}
		var end sql.NullTime
		if err := rows.Scan(&b.EventID, &b.Start, &end); err != nil {
			return nil, fmt.Errorf("scan venue booking: %w", err)
		}
		if end.Valid {
			b.End = &end.Time
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// LockVenue takes a transaction-scoped advisory lock keyed by the venue ID.
func (r *eventRepository) LockVenue(ctx context.Context, venueID string) error {
	if _, err := sqltx.Conn(ctx, r.DB).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, venueID); err != nil {
		return fmt.Errorf("lock venue: %w", err)
	}
	return nil
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqltx.Conn(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
