package entity

// PlanTier identifies a subscription package.
type PlanTier string

const (
	// PlanBasic is the entry tier; it is never granted at approval time.
	PlanBasic PlanTier = "basic"
	// PlanPremium is the tier granted to every approved vendor as a trial.
	PlanPremium PlanTier = "premium"
)

// BillingCycleMonthly is the only billing cycle sold today.
const BillingCycleMonthly = "monthly"

// CurrencyINR is the platform currency.
const CurrencyINR = "INR"

// PremiumMonthlyPricePaise is the premium plan price used for trial
// conversion, expressed in the gateway's minor unit (₹999.00).
const PremiumMonthlyPricePaise int64 = 99900

// Entitlements are the feature caps snapshotted onto a subscription when it
// is created. They do not change retroactively if the plan definition moves.
type Entitlements struct {
	MaxProducts     int
	MaxOrders       int
	StorageLimitMB  int
	AnalyticsAccess bool
	PrioritySupport bool
}

// planEntitlements defines the caps per tier.
var planEntitlements = map[PlanTier]Entitlements{
	PlanBasic: {
		MaxProducts:     50,
		MaxOrders:       500,
		StorageLimitMB:  1024,
		AnalyticsAccess: false,
		PrioritySupport: false,
	},
	PlanPremium: {
		MaxProducts:     1000,
		MaxOrders:       10000,
		StorageLimitMB:  10240,
		AnalyticsAccess: true,
		PrioritySupport: true,
	},
}

// EntitlementsFor returns the entitlement snapshot for a tier. Unknown tiers
// fall back to the basic caps.
func EntitlementsFor(tier PlanTier) Entitlements {
	if ent, ok := planEntitlements[tier]; ok {
		return ent
	}

	return planEntitlements[PlanBasic]
}
