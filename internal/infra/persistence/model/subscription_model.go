package model

import (
	"time"

	"github.com/google/uuid"
)

// VendorSubscriptionModel mirrors the 'vendor_subscriptions' table. The
// unique index on VendorID enforces the one-row-per-vendor rule; upgrades
// mutate the row in place rather than inserting history.
type VendorSubscriptionModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	PlanTier    string `gorm:"type:varchar(20);not null"`
	Status      string `gorm:"type:varchar(20);not null;index"`
	IsTrial     bool   `gorm:"not null;default:false"`
	StartDate   time.Time
	EndDate     time.Time `gorm:"not null;index"`
	TrialEndsAt *time.Time
	AutoRenew   bool `gorm:"not null;default:false"`

	// Entitlement snapshot taken at plan assignment.
	MaxProducts     int
	MaxOrders       int
	StorageLimitMB  int
	AnalyticsAccess bool
	PrioritySupport bool

	AmountPaise  int64  `gorm:"not null"`
	Currency     string `gorm:"type:varchar(10);not null"`
	BillingCycle string `gorm:"type:varchar(20);not null"`

	LastOrderID   string `gorm:"type:varchar(100)"`
	LastPaymentID string `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (VendorSubscriptionModel) TableName() string {
	return "vendor_subscriptions"
}
