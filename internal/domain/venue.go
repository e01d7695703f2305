package domain

import (
	"context"
	"time"
)

// Venue is a physical place where events take place.
// Capacity is informational and is not enforced against event capacity.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVenue returns a new Venue with the given fields. ID is typically set by the repository on create.
func NewVenue(name, address string, capacity int, createdAt, updatedAt time.Time) *Venue {
	return &Venue{
		Name:      name,
		Address:   address,
		Capacity:  capacity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// VenueRepository defines the interface for venue storage. Venues are never deleted.
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	Count(ctx context.Context) (int, error)
}

// VenueService defines venue administration and availability lookups.
type VenueService interface {
	CreateVenue(ctx context.Context, actor Actor, name, address string, capacity int) (*Venue, error)
	UpdateVenue(ctx context.Context, actor Actor, venueID, name, address string, capacity int) (*Venue, error)
	GetVenue(ctx context.Context, venueID string) (*Venue, error)
	ListVenues(ctx context.Context) ([]*Venue, error)
	CheckAvailability(ctx context.Context, venueID string, start time.Time, end *time.Time, excludeEventID string) (bool, error)
}
