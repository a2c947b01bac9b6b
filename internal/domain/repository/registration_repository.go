package repository

import (
	"context"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrRegistrationNotFound indicates no registration request matches the given ID.
	ErrRegistrationNotFound = errors.New("registration request not found")
	// ErrDuplicateRegistration indicates an unreviewed or approved request already exists for the email.
	ErrDuplicateRegistration = errors.New("registration request already exists for this email")
	// ErrRegistrationNotPending indicates the request has already been reviewed.
	ErrRegistrationNotPending = errors.New("registration request is not pending")
)

// RegistrationRepository persists vendor registration requests and their review state.
type RegistrationRepository interface {
	// Create stores a new registration request in pending status.
	// Returns ErrDuplicateRegistration when a non-rejected request already exists for the same email.
	Create(ctx context.Context, req *entity.VendorRegistrationRequest) error

	// FindByID fetches a single registration request.
	// Returns ErrRegistrationNotFound when no record matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorRegistrationRequest, error)

	// FindActiveByEmail fetches the latest non-rejected request for the email, if any.
	// Returns ErrRegistrationNotFound when no such record exists.
	FindActiveByEmail(ctx context.Context, email string) (*entity.VendorRegistrationRequest, error)

	// List returns requests filtered by status, newest first. An empty status returns all.
	List(ctx context.Context, status entity.RegistrationStatus, limit, offset int) ([]*entity.VendorRegistrationRequest, int64, error)

	// MarkReviewed records the review decision. The update is guarded on the
	// current status still being pending; ErrRegistrationNotPending is
	// returned when another reviewer got there first.
	MarkReviewed(ctx context.Context, id uuid.UUID, review *entity.ReviewDecision) error
}
