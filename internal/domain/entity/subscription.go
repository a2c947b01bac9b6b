package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus communicates why access will or won't continue. The
// authoritative access cutoff is always EndDate, regardless of status label.
type SubscriptionStatus string

const (
	// SubscriptionTrial is the time-boxed premium window granted at approval.
	SubscriptionTrial SubscriptionStatus = "trial"
	// SubscriptionActive is a paid, current subscription.
	SubscriptionActive SubscriptionStatus = "active"
	// SubscriptionCancelled means the vendor opted out; access remains until EndDate.
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	// SubscriptionGracePeriod is the fixed window after a cancelled
	// subscription's EndDate during which renewal still restores access.
	SubscriptionGracePeriod SubscriptionStatus = "grace_period"
	// SubscriptionExpired means access has fully lapsed.
	SubscriptionExpired SubscriptionStatus = "expired"
)

// subscriptionTransitions is the allowed state machine. Renewal payments may
// reactivate cancelled, grace-period and expired subscriptions.
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionTrial:       {SubscriptionActive, SubscriptionExpired},
	SubscriptionActive:      {SubscriptionCancelled},
	SubscriptionCancelled:   {SubscriptionGracePeriod, SubscriptionActive},
	SubscriptionGracePeriod: {SubscriptionExpired, SubscriptionActive},
	SubscriptionExpired:     {SubscriptionActive},
}

// VendorSubscription tracks a vendor's plan, trial window and entitlement
// snapshot. At most one row exists per vendor; upgrades update it in place.
type VendorSubscription struct {
	ID       uuid.UUID
	VendorID uuid.UUID // The owning vendor user's ID; unique.

	PlanTier    PlanTier
	Status      SubscriptionStatus
	IsTrial     bool
	StartDate   time.Time
	EndDate     time.Time // The authoritative access cutoff.
	TrialEndsAt *time.Time
	AutoRenew   bool

	Entitlements Entitlements

	// Billing fields are set at creation but dormant during the trial; no
	// charge occurs until conversion.
	AmountPaise  int64
	Currency     string
	BillingCycle string

	// Gateway bookkeeping from the most recent order-create/verify handshake.
	LastOrderID   string
	LastPaymentID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransition reports whether moving to the target status is a legal edge
// of the subscription state machine.
func (s *VendorSubscription) CanTransition(to SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s.Status] {
		if allowed == to {
			return true
		}
	}

	return false
}

// HasAccess reports whether the vendor retains feature access at the given
// instant. The status label never extends access past EndDate, except that a
// cancelled subscription keeps access through its grace window.
func (s *VendorSubscription) HasAccess(now time.Time, gracePeriod time.Duration) bool {
	if now.Before(s.EndDate) {
		return s.Status != SubscriptionExpired
	}

	switch s.Status {
	case SubscriptionCancelled, SubscriptionGracePeriod:
		return now.Before(s.EndDate.Add(gracePeriod))
	default:
		return false
	}
}

// NewTrialSubscription builds the premium trial granted at approval time.
func NewTrialSubscription(vendorID uuid.UUID, now time.Time, trialDays int) *VendorSubscription {
	trialEnd := now.AddDate(0, 0, trialDays)

	return &VendorSubscription{
		VendorID:     vendorID,
		PlanTier:     PlanPremium,
		Status:       SubscriptionTrial,
		IsTrial:      true,
		StartDate:    now,
		EndDate:      trialEnd,
		TrialEndsAt:  &trialEnd,
		AutoRenew:    false,
		Entitlements: EntitlementsFor(PlanPremium),
		AmountPaise:  PremiumMonthlyPricePaise,
		Currency:     CurrencyINR,
		BillingCycle: BillingCycleMonthly,
	}
}
