package domain

import (
	"context"
	"time"
)

// User represents a registered user of the application.
// A user is never reachable through the login flow until Verified is true.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Initials returns the user's display initials, e.g. "JD" for Jane Doe.
func (u *User) Initials() string {
	initials := ""
	if u.FirstName != "" {
		initials += string([]rune(u.FirstName)[:1])
	}
	if u.LastName != "" {
		initials += string([]rune(u.LastName)[:1])
	}
	return initials
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error
}
