package domain

import (
	"context"
	"time"
)

// VenueBooking is an event schedule seen from the venue's side.
type VenueBooking struct {
	EventID string
	VenueID string
	Start   time.Time
	End     *time.Time
}

// Conflicts reports whether the booking collides with a request for [start, end].
//
// The test is the three-clause disjunction
//
//	(s1 <= s2 && e1 > s2) || (s1 < e2 && e1 >= e2) || (s1 >= s2 && e1 <= e2)
//
// where [s1, e1] is the existing booking and [s2, e2] the request. The clauses
// overlap each other and mix strict and inclusive edges; keep them as they are.
// A booking without an end is compared as [start, start]: it reserves its
// start instant and nothing after it.
func (b VenueBooking) Conflicts(start, end time.Time) bool {
	s1, e1 := b.Start, b.Start
	if b.End != nil {
		e1 = *b.End
	}
	s2, e2 := start, end

	return (!s1.After(s2) && e1.After(s2)) ||
		(s1.Before(e2) && !e1.Before(e2)) ||
		(!s1.Before(s2) && !e1.After(e2))
}

// AvailabilityChecker decides whether a venue is free for a time interval.
type AvailabilityChecker interface {
	// IsVenueAvailable returns true when no booking at venueID other than
	// excludeEventID conflicts with [start, end]. A nil end means end == start;
	// an empty venueID is always available.
	IsVenueAvailable(ctx context.Context, venueID string, start time.Time, end *time.Time, excludeEventID string) (bool, error)
}
