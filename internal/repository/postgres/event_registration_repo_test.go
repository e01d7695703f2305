package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"eventmanager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WithArgs("ev-1", "user-1", at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("reg-1"))
			},
		},
		{
			name: "duplicate pair returns ErrAlreadyRegistered",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrAlreadyRegistered,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO registrations`).
					WillReturnError(sql.ErrConnDone)
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
			reg := domain.NewRegistration("ev-1", "user-1", at)
			err = NewEventRegistrationRepository(db).Create(ctx, reg)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "reg-1", reg.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRegistrationRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "removed", affected: 1, want: true},
		{name: "nothing to remove", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`DELETE FROM registrations WHERE event_id = \$1 AND user_id = \$2`).
				WithArgs("ev-1", "user-1").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := NewEventRegistrationRepository(db).Delete(context.Background(), "ev-1", "user-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRegistrationRepository_ListAttendees(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Same created_at: insertion sequence decides, not the random id.
	first := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ORDER BY r.created_at ASC, r.seq ASC`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "created_at"}).
			AddRow("user-9", "Zed", "zed@example.com", "attendee", first).
			AddRow("user-1", "Ann", "ann@example.com", "organizer", first))

	attendees, err := NewEventRegistrationRepository(db).ListAttendees(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, attendees, 2)
	assert.Equal(t, "user-9", attendees[0].UserID)
	assert.Equal(t, domain.RoleOrganizer, attendees[1].Role)
	assert.Equal(t, first, attendees[0].RegisteredAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRegistrationRepository_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ev-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM registrations WHERE event_id = \$1`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COUNT\(DISTINCT event_id\) FROM registrations`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := NewEventRegistrationRepository(db)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	assert.True(t, exists)

	n, err := repo.CountByEvent(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	withRegs, err := repo.CountEventsWithRegistrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, withRegs)
	require.NoError(t, mock.ExpectationsWereMet())
}
