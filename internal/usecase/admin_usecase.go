package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListRegistrationsInput filters the admin review queue.
type ListRegistrationsInput struct {
	Status entity.RegistrationStatus // empty means all
	Limit  int
	Offset int
}

// RejectRegistrationInput carries the rejection decision.
type RejectRegistrationInput struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Reason     string
}

// --- Output DTOs ---

// ListRegistrationsOutput is one page of the review queue.
type ListRegistrationsOutput struct {
	Requests []*entity.VendorRegistrationRequest
	Total    int64
}

// ApproveRegistrationOutput returns everything provisioned by an approval.
type ApproveRegistrationOutput struct {
	User         *entity.User
	Subscription *entity.VendorSubscription
}

// AdminUsecase defines the interface for the admin review workflow over
// vendor applications.
type AdminUsecase interface {
	// ListRegistrations pages through the review queue, newest first.
	ListRegistrations(ctx context.Context, input *ListRegistrationsInput) (*ListRegistrationsOutput, error)

	// GetRegistration fetches one application with every submitted section.
	GetRegistration(ctx context.Context, requestID uuid.UUID) (*entity.VendorRegistrationRequest, error)

	// ApproveRegistration provisions the vendor account, storefront profile
	// and trial subscription in one transaction, then sends the welcome
	// email. Approving an already-approved request is a no-op that returns
	// the existing account.
	ApproveRegistration(ctx context.Context, requestID, reviewerID uuid.UUID) (*ApproveRegistrationOutput, error)

	// RejectRegistration closes the application with a reason and notifies
	// the applicant. Rejecting a non-pending request is an error.
	RejectRegistration(ctx context.Context, input *RejectRegistrationInput) error
}
