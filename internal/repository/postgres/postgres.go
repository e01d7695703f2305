// Package postgres implements the repository ports on PostgreSQL using lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventmanager/internal/repository/migrate"
	"eventmanager/internal/repository/postgres/migrations"
	"eventmanager/internal/repository/sqltx"
)

// Open connects to url, verifies the connection and applies embedded migrations.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := migrate.Apply(ctx, db, migrations.FS, migrate.Dollar); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// NewTransactor returns a READ COMMITTED transaction runner. Admissions get
// their isolation from row and advisory locks, not from the isolation level.
func NewTransactor(db *sql.DB) *sqltx.Transactor {
	return sqltx.NewTransactor(db, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23505"
}

// likePattern returns a substring pattern for ILIKE with the default backslash escape.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}
