package repository

import (
	"context"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound indicates no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser indicates the email is already registered.
	ErrDuplicateUser = errors.New("user already exists with this email")
	// ErrVendorNotFound indicates no vendor profile matches the lookup.
	ErrVendorNotFound = errors.New("vendor not found")
)

// UserRepository manages user accounts and their vendor profiles.
type UserRepository interface {
	// Create stores a new user. When user.VendorProfile is set, the profile
	// is created in the same operation.
	// Returns ErrDuplicateUser on an email collision.
	Create(ctx context.Context, user *entity.User) error

	// FindByID fetches a user by primary key, vendor profile preloaded.
	// Returns ErrUserNotFound when no record matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail fetches a user by email, vendor profile preloaded.
	// Returns ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether any account already uses the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
