package usecase

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ConfirmUpgradeInput carries the payment callback fields echoed by the
// checkout client after the provider collects payment.
type ConfirmUpgradeInput struct {
	VendorID  uuid.UUID
	OrderID   string
	PaymentID string
	Signature string
}

// --- Output DTOs ---

// SubscriptionOutput is the vendor-facing view of their subscription,
// including the derived access verdict so clients never recompute it.
type SubscriptionOutput struct {
	Subscription *entity.VendorSubscription `json:"subscription"`
	HasAccess    bool                       `json:"has_access"`
	DaysLeft     int                        `json:"days_left"`
}

// UpgradeOrderOutput returns the provider order the client needs to open
// checkout.
type UpgradeOrderOutput struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// EntitlementFeature names a plan-gated capability for CheckEntitlement.
type EntitlementFeature string

const (
	// FeatureProducts gates creating another product listing.
	FeatureProducts EntitlementFeature = "products"
	// FeatureOrders gates accepting another order.
	FeatureOrders EntitlementFeature = "orders"
	// FeatureAnalytics gates the analytics dashboard.
	FeatureAnalytics EntitlementFeature = "analytics"
)

// SubscriptionUsecase defines the interface for the vendor subscription
// lifecycle: trial, paid upgrade, cancellation and expiry.
type SubscriptionUsecase interface {
	// GetSubscription returns the vendor's subscription with its current
	// access verdict.
	GetSubscription(ctx context.Context, vendorID uuid.UUID) (*SubscriptionOutput, error)

	// CreateUpgradeOrder registers a payment order for one month of the
	// premium plan and returns it for client-side checkout.
	CreateUpgradeOrder(ctx context.Context, vendorID uuid.UUID) (*UpgradeOrderOutput, error)

	// ConfirmUpgrade verifies the payment signature and activates a paid
	// premium period from the later of now and the current end date.
	ConfirmUpgrade(ctx context.Context, input *ConfirmUpgradeInput) (*SubscriptionOutput, error)

	// CancelSubscription turns off auto-renew and moves an active
	// subscription to cancelled. Access runs until the end date.
	CancelSubscription(ctx context.Context, vendorID uuid.UUID) (*SubscriptionOutput, error)

	// CheckEntitlement verifies the vendor's plan covers the feature and,
	// for counted features, that the plan's cap is not exhausted. A nil
	// return means the action may proceed.
	CheckEntitlement(ctx context.Context, vendorID uuid.UUID, feature EntitlementFeature) error

	// ExpireLapsed sweeps subscriptions past their end date into
	// grace_period or expired and notifies the affected vendors. Returns
	// how many records changed state.
	ExpireLapsed(ctx context.Context, now time.Time) (int, error)
}
