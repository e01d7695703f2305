package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 11, 25, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestVenueBooking_Conflicts(t *testing.T) {
	// Existing booking 18:00-20:00.
	booked := VenueBooking{EventID: "a", VenueID: "v", Start: at(18, 0), End: ptr(at(20, 0))}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical interval", at(18, 0), at(20, 0), true},
		{"starts inside ends after", at(19, 0), at(21, 0), true},
		{"starts before ends inside", at(17, 0), at(19, 0), true},
		{"encloses booking", at(17, 0), at(21, 0), true},
		{"inside booking", at(18, 30), at(19, 30), true},
		{"same start ends earlier", at(18, 0), at(19, 0), true},
		{"same end starts later", at(19, 0), at(20, 0), true},
		{"back to back after", at(20, 0), at(21, 0), false},
		{"back to back before", at(16, 0), at(18, 0), false},
		{"entirely before", at(15, 0), at(17, 0), false},
		{"entirely after", at(21, 0), at(22, 0), false},
		{"instant at booking start", at(18, 0), at(18, 0), true},
		{"instant at booking end", at(20, 0), at(20, 0), true},
		{"instant inside", at(19, 0), at(19, 0), true},
		{"instant after end", at(20, 1), at(20, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Conflicts(tt.start, tt.end))
		})
	}
}

func TestVenueBooking_Conflicts_RequestEndingInsideBooking(t *testing.T) {
	// Clause two compares the booking with the request's end: s1 < e2 && e1 >= e2.
	booked := VenueBooking{EventID: "a", VenueID: "v", Start: at(18, 0), End: ptr(at(20, 0))}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"ends one minute in", at(17, 0), at(18, 1)},
		{"ends mid booking", at(17, 0), at(19, 0)},
		{"ends with booking", at(17, 0), at(20, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, booked.Conflicts(tt.start, tt.end))
		})
	}
}

func TestVenueBooking_Conflicts_OpenEndedBooking(t *testing.T) {
	// Open-ended booking at 18:00 is compared as the instant [18:00, 18:00].
	booked := VenueBooking{EventID: "a", VenueID: "v", Start: at(18, 0)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"request covers the instant", at(17, 0), at(19, 0), true},
		{"request ends at the instant", at(17, 0), at(18, 0), true},
		{"request starts at the instant", at(18, 0), at(19, 0), true},
		{"request same instant", at(18, 0), at(18, 0), true},
		{"request after the instant", at(18, 1), at(19, 0), false},
		{"request before the instant", at(16, 0), at(17, 59), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Conflicts(tt.start, tt.end))
		})
	}
}
