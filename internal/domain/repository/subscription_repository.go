package repository

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrSubscriptionNotFound indicates the vendor has no subscription record.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrDuplicateSubscription indicates the vendor already has a subscription.
	ErrDuplicateSubscription = errors.New("subscription already exists for this vendor")
)

// SubscriptionRepository persists one subscription record per vendor.
type SubscriptionRepository interface {
	// Create stores a new subscription.
	// Returns ErrDuplicateSubscription when the vendor already has one.
	Create(ctx context.Context, sub *entity.VendorSubscription) error

	// FindByVendorID fetches the vendor's subscription.
	// Returns ErrSubscriptionNotFound when no record matches.
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSubscription, error)

	// Update persists the full subscription state.
	Update(ctx context.Context, sub *entity.VendorSubscription) error

	// ListLapsed returns subscriptions whose end date has passed but whose
	// status has not yet reached a post-access state. Used by the sweep job.
	ListLapsed(ctx context.Context, now time.Time, limit int) ([]*entity.VendorSubscription, error)
}
