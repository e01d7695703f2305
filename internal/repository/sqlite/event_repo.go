package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository/sqltx"
)

// EventRepository implements domain.EventRepository. Schedules live in their
// own table keyed by event ID.
type EventRepository struct {
	db *sql.DB
}

var _ domain.EventRepository = (*EventRepository)(nil)

const eventSelect = `SELECT e.id, e.title, e.description, e.capacity, e.organizer_id, e.venue_id,
	e.created_at, e.updated_at, s.start_at, s.end_at
	FROM events e
	LEFT JOIN schedules s ON s.event_id = e.id`

const eventOrder = ` ORDER BY s.start_at IS NULL, s.start_at, e.created_at, e.id`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	var (
		e                    domain.Event
		capacity             sql.NullInt64
		venueID              sql.NullString
		createdAt, updatedAt int64
		startAt, endAt       sql.NullInt64
	)
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &capacity, &e.OrganizerID, &venueID,
		&createdAt, &updatedAt, &startAt, &endAt); err != nil {
		return nil, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if venueID.Valid {
		e.VenueID = &venueID.String
	}
	e.CreatedAt = fromMillis(createdAt)
	e.UpdatedAt = fromMillis(updatedAt)
	if startAt.Valid {
		e.Schedule = &domain.Schedule{EventID: e.ID, Start: fromMillis(startAt.Int64)}
		if endAt.Valid {
			end := fromMillis(endAt.Int64)
			e.Schedule.End = &end
		}
	}
	return &e, nil
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

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	id := uuid.NewString()
	q := sqltx.Conn(ctx, r.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO events (id, title, description, capacity, organizer_id, venue_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.Title, e.Description, nullCapacity(e.Capacity), e.OrganizerID, nullString(e.VenueID),
		toMillis(e.CreatedAt), toMillis(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	if err := r.writeSchedule(ctx, q, id, e.Schedule); err != nil {
		return err
	}
	e.ID = id
	if e.Schedule != nil {
		e.Schedule.EventID = id
	}
	return nil
}

func (r *EventRepository) writeSchedule(ctx context.Context, q sqltx.Querier, eventID string, sch *domain.Schedule) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM schedules WHERE event_id = ?`, eventID); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	if sch == nil {
		return nil
	}
	_, err := q.ExecContext(ctx,
		`INSERT INTO schedules (event_id, start_at, end_at) VALUES (?, ?, ?)`,
		eventID, toMillis(sch.Start), nullMillis(sch.End),
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := sqltx.Conn(ctx, r.db).QueryRowContext(ctx, eventSelect+` WHERE e.id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// GetForUpdate is GetByID: IMMEDIATE transactions already hold the database write lock.
func (r *EventRepository) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	q := sqltx.Conn(ctx, r.db)
	res, err := q.ExecContext(ctx,
		`UPDATE events SET title = ?, description = ?, capacity = ?, organizer_id = ?, venue_id = ?, updated_at = ?
		 WHERE id = ?`,
		e.Title, e.Description, nullCapacity(e.Capacity), e.OrganizerID, nullString(e.VenueID),
		toMillis(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	if err := r.writeSchedule(ctx, q, e.ID, e.Schedule); err != nil {
		return err
	}
	if e.Schedule != nil {
		e.Schedule.EventID = e.ID
	}
	return nil
}

// Delete removes the event; schedule and registrations cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := sqltx.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, int, error) {
	var (
		where []string
		args  []any
	)
	if query := strings.TrimSpace(filter.Query); query != "" {
		p := likePattern(query)
		where = append(where, `(lower(e.title) LIKE ? ESCAPE '\' OR lower(e.description) LIKE ? ESCAPE '\'
			OR e.venue_id IN (SELECT id FROM venues WHERE lower(name) LIKE ? ESCAPE '\'))`)
		args = append(args, p, p, p)
	}
	if filter.ActiveOnly {
		where = append(where, `(s.end_at IS NULL OR s.end_at > ?)`)
		args = append(args, toMillis(filter.Now))
	}
	cond := ""
	if len(where) > 0 {
		cond = ` WHERE ` + strings.Join(where, ` AND `)
	}

	q := sqltx.Conn(ctx, r.db)
	var total int
	countSQL := `SELECT COUNT(*) FROM events e LEFT JOIN schedules s ON s.event_id = e.id` + cond
	if err := q.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	listSQL := eventSelect + cond + eventOrder
	if filter.Pagination.PageSize > 0 {
		listSQL += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Pagination.PageSize, filter.Pagination.Offset())
	}
	events, err := r.query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return r.query(ctx, eventSelect+` WHERE e.organizer_id = ?`+eventOrder, organizerID)
}

func (r *EventRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := sqltx.Conn(ctx, r.db).QueryContext(ctx, query, args...)
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

func (r *EventRepository) ListVenueBookings(ctx context.Context, venueID string) ([]domain.VenueBooking, error) {
	rows, err := sqltx.Conn(ctx, r.db).QueryContext(ctx,
		`SELECT e.id, s.start_at, s.end_at
		 FROM events e
		 JOIN schedules s ON s.event_id = e.id
		 WHERE e.venue_id = ?`, venueID)
	if err != nil {
		return nil, fmt.Errorf("list venue bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.VenueBooking
	for rows.Next() {
		var (
			b       = domain.VenueBooking{VenueID: venueID}
			startAt int64
			endAt   sql.NullInt64
		)
		if err := rows.Scan(&b.EventID, &startAt, &endAt); err != nil {
			return nil, fmt.Errorf("scan venue booking: %w", err)
		}
		b.Start = fromMillis(startAt)
		if endAt.Valid {
			end := fromMillis(endAt.Int64)
			b.End = &end
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// LockVenue is a no-op: IMMEDIATE transactions already serialize writers.
func (r *EventRepository) LockVenue(ctx context.Context, venueID string) error {
	return nil
}

func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqltx.Conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
