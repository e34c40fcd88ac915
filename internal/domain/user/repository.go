// Package user defines the site operator entity and its repository interface.
package user

import (
	"context"
	"time"
)

// User is an operator account allowed to sign in to the admin surface.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository defines persistence operations for users.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Store(ctx context.Context, u *User) error
}
