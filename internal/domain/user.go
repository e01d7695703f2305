package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// Role is the application role of a user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleAttendee:
		return true
	}
	return false
}

// User represents a registered user
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(name, email string, role Role, createdAt time.Time) *User {
	return &User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: createdAt,
	}
}

// Actor is the explicit identity of the caller of an application service.
// It replaces any notion of an ambient "logged in" user.
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanManage reports whether the actor may edit, delete or manage attendees of
// an event organized by organizerID.
func (a Actor) CanManage(organizerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == organizerID)
}

// TokenIssuer issues tokens (e.g. JWT) for a user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	// Delete removes the user together with the user's registrations.
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context) (map[Role]int, error)
}

// UserService defines user administration operations.
type UserService interface {
	CreateUser(ctx context.Context, actor Actor, name, email string, role Role) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, actor Actor, params PaginationParams) ([]*User, int, error)
	UpdateRole(ctx context.Context, actor Actor, userID string, role Role) (*User, error)
	DeleteUser(ctx context.Context, actor Actor, userID string) error
}
