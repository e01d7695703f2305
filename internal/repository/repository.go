// Package repository selects and opens the configured store.
package repository

import (
	"context"
	"fmt"

	"eventmanager/config"
	"eventmanager/internal/domain"
	"eventmanager/internal/repository/memory"
	"eventmanager/internal/repository/postgres"
	"eventmanager/internal/repository/sqlite"
)

// Repositories bundles the repository ports of one store and the
// transaction runner they share.
type Repositories struct {
	Tx            domain.Transactor
	Users         domain.UserRepository
	Venues        domain.VenueRepository
	Events        domain.EventRepository
	Registrations domain.RegistrationRepository

	close func() error
}

// Close releases the underlying database handle, if any.
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Open opens the store named by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		s := memory.New()
		return &Repositories{
			Tx:            s,
			Users:         s.Users(),
			Venues:        s.Venues(),
			Events:        s.Events(),
			Registrations: s.Registrations(),
		}, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Tx:            s.Transactor(),
			Users:         s.Users(),
			Venues:        s.Venues(),
			Events:        s.Events(),
			Registrations: s.Registrations(),
			close:         s.Close,
		}, nil
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Tx:            postgres.NewTransactor(db),
			Users:         postgres.NewUserRepository(db),
			Venues:        postgres.NewVenueRepository(db),
			Events:        postgres.NewEventRepository(db),
			Registrations: postgres.NewEventRegistrationRepository(db),
			close:         db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
