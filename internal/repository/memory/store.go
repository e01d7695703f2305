// Package memory provides an in-process implementation of every repository
// port. It backs tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"eventmanager/internal/domain"
)

// Store holds all state behind one mutex. A transaction holds the mutex for
// its whole duration, which serializes admissions.
type Store struct {
	mu            sync.Mutex
	users         map[string]domain.User
	venues        map[string]domain.Venue
	events        map[string]domain.Event
	registrations []domain.Registration
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:  make(map[string]domain.User),
		venues: make(map[string]domain.Venue),
		events: make(map[string]domain.Event),
	}
}

type txKey struct{}

// WithinTx implements domain.Transactor. State changes made by fn are
// discarded when fn returns an error or panics; the panic is re-raised.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// lock acquires the store mutex unless ctx already runs inside a transaction.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	users         map[string]domain.User
	venues        map[string]domain.Venue
	events        map[string]domain.Event
	registrations []domain.Registration
}

// Stored values never share pointers with callers, so shallow copies are enough.
func (s *Store) snapshot() snapshot {
	return snapshot{
		users:         maps.Clone(s.users),
		venues:        maps.Clone(s.venues),
		events:        maps.Clone(s.events),
		registrations: slices.Clone(s.registrations),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.venues = snap.venues
	s.events = snap.events
	s.registrations = snap.registrations
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Venues returns the venue repository view of the store.
func (s *Store) Venues() *VenueRepository { return &VenueRepository{s: s} }

// Events returns the event repository view of the store.
func (s *Store) Events() *EventRepository { return &EventRepository{s: s} }

// Registrations returns the registration repository view of the store.
func (s *Store) Registrations() *RegistrationRepository { return &RegistrationRepository{s: s} }
