package domain

import "context"

// Statistics is a snapshot of store-wide totals.
// swagger:model Statistics
type Statistics struct {
	TotalEvents             int `json:"total_events"`
	TotalUsers              int `json:"total_users"`
	TotalVenues             int `json:"total_venues"`
	TotalRegistrations      int `json:"total_registrations"`
	AttendeeCount           int `json:"attendee_count"`
	OrganizerCount          int `json:"organizer_count"`
	AdminCount              int `json:"admin_count"`
	EventsWithRegistrations int `json:"events_with_registrations"`
}

// StatsService computes Statistics for admins.
type StatsService interface {
	Statistics(ctx context.Context, actor Actor) (*Statistics, error)
}
