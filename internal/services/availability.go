package services

import (
	"context"
	"fmt"
	"time"

	"eventmanager/internal/domain"
)

type availabilityChecker struct {
	eventRepo domain.EventRepository
}

// NewAvailabilityChecker returns a checker that reads venue bookings from eventRepo.
// It joins any transaction carried by the context it is called with.
func NewAvailabilityChecker(eventRepo domain.EventRepository) domain.AvailabilityChecker {
	return &availabilityChecker{eventRepo: eventRepo}
}

func (c *availabilityChecker) IsVenueAvailable(ctx context.Context, venueID string, start time.Time, end *time.Time, excludeEventID string) (bool, error) {
	if venueID == "" {
		return true, nil
	}
	requestEnd := start
	if end != nil {
		requestEnd = *end
	}

	bookings, err := c.eventRepo.ListVenueBookings(ctx, venueID)
	if err != nil {
		return false, fmt.Errorf("list venue bookings: %w", err)
	}
	for _, b := range bookings {
		if excludeEventID != "" && b.EventID == excludeEventID {
			continue
		}
		if b.Conflicts(start, requestEnd) {
			return false, nil
		}
	}
	return true, nil
}
