package repository

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound indicates no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// VendorTotals aggregates a vendor's order volume over a window.
// RevenuePaise only counts non-cancelled orders.
type VendorTotals struct {
	OrderCount   int64
	RevenuePaise int64
}

// DayBucket is one day of aggregated order activity.
type DayBucket struct {
	Day          time.Time
	OrderCount   int64
	RevenuePaise int64
}

// OrderRepository manages customer orders and their aggregates.
type OrderRepository interface {
	// Create stores a new order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID fetches a single order.
	// Returns ErrOrderNotFound when no record matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus moves the order to a new status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// CountByVendor returns the vendor's total order count, for
	// entitlement checks.
	CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)

	// TotalsForVendor aggregates the vendor's orders within [from, to).
	TotalsForVendor(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*VendorTotals, error)

	// DailyBuckets groups the vendor's orders by calendar day within
	// [from, to), ascending.
	DailyBuckets(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*DayBucket, error)
}
