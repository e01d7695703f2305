package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"eventmanager/internal/domain"
	"eventmanager/internal/repository/sqltx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{"id", "title", "description", "capacity", "organizer_id", "venue_id",
	"created_at", "updated_at", "start_at", "end_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2025, 11, 25, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	capacity := 100
	venueID := "venue-1"

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "with schedule",
			event: domain.NewEvent("Meetup", "Monthly", &capacity, "org-1", &venueID,
				&domain.Schedule{Start: start, End: &end}, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Meetup", "Monthly", 100, "org-1", "venue-1", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
				mock.ExpectExec(`DELETE FROM schedules`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO schedules`).
					WithArgs("ev-1", start, end).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:  "unscheduled with unlimited capacity",
			event: domain.NewEvent("TBD", "", nil, "org-1", nil, nil, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("TBD", "", nil, "org-1", nil, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-2"))
				mock.ExpectExec(`DELETE FROM schedules`).
					WithArgs("ev-2").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name:  "insert fails",
			event: domain.NewEvent("Meetup", "", nil, "org-1", nil, nil, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewEventRepository(db).Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tt.event.ID)
				if tt.event.Schedule != nil {
					assert.Equal(t, tt.event.ID, tt.event.Schedule.EventID)
				}
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2025, 11, 25, 18, 0, 0, 0, time.UTC)

	t.Run("scheduled event without end", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events e\s+LEFT JOIN schedules s ON s.event_id = e.id\s+WHERE e.id = \$1`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Meetup", "", int64(30), "org-1", "venue-1", now, now, start, nil))

		e, err := NewEventRepository(db).GetByID(ctx, "ev-1")
		require.NoError(t, err)
		require.NotNil(t, e.Capacity)
		assert.Equal(t, 30, *e.Capacity)
		require.NotNil(t, e.VenueID)
		assert.Equal(t, "venue-1", *e.VenueID)
		require.NotNil(t, e.Schedule)
		assert.Equal(t, start, e.Schedule.Start)
		assert.Nil(t, e.Schedule.End)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events e`).WillReturnError(sql.ErrNoRows)

		_, err = NewEventRepository(db).GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_AdmissionLocks(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
		WithArgs("venue-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`WHERE e.id = \$1 FOR UPDATE OF e`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("ev-1", "Meetup", "", nil, "org-1", nil, now, now, nil, nil))
	mock.ExpectCommit()

	repo := NewEventRepository(db)
	err = NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
		require.True(t, sqltx.InTx(ctx))
		if err := repo.LockVenue(ctx, "venue-1"); err != nil {
			return err
		}
		e, err := repo.GetForUpdate(ctx, "ev-1")
		if err != nil {
			return err
		}
		assert.Nil(t, e.Capacity)
		assert.Nil(t, e.Schedule)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 11, 25, 18, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events e LEFT JOIN schedules s ON s.event_id = e.id WHERE .*ILIKE \$1.*s.end_at > \$2`).
		WithArgs(`%50\%%`, now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`ORDER BY s.start_at ASC NULLS LAST, e.created_at, e.id LIMIT \$3 OFFSET \$4`).
		WithArgs(`%50\%%`, now, 10, 10).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("ev-11", "50% off", "", nil, "org-1", nil, now, now, start, nil))

	events, total, err := NewEventRepository(db).List(context.Background(), domain.EventFilter{
		Query:      "50%",
		ActiveOnly: true,
		Now:        now,
		Pagination: domain.PaginationParams{Page: 2, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-11", events[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListVenueBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 11, 25, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	mock.ExpectQuery(`JOIN schedules s ON s.event_id = e.id\s+WHERE e.venue_id = \$1`).
		WithArgs("venue-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_at", "end_at"}).
			AddRow("ev-1", start, end).
			AddRow("ev-2", start.Add(48*time.Hour), nil))

	bookings, err := NewEventRepository(db).ListVenueBookings(context.Background(), "venue-1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, end, *bookings[0].End)
	assert.Nil(t, bookings[1].End)
	assert.Equal(t, "venue-1", bookings[1].VenueID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		errIs    error
	}{
		{name: "deleted", affected: 1},
		{name: "not found", affected: 0, errIs: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
				WithArgs("ev-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err = NewEventRepository(db).Delete(context.Background(), "ev-1")
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
