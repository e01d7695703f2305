package domain

import "errors"

// Generic sentinel errors shared by repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// Admission errors surfaced by the registration ledger and the event service.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event is full")
	ErrVenueConflict     = errors.New("venue is already booked for the selected time")
)

// ErrVenueNotFound is returned when an event references a venue that does not exist.
var ErrVenueNotFound = errors.New("venue not found")
