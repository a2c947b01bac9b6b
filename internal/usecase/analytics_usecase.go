package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// DashboardInput identifies whose dashboard to build and who is asking.
// Requester fields drive the self-or-admin authorization check.
type DashboardInput struct {
	VendorID       uuid.UUID
	RequesterID    uuid.UUID
	RequesterAdmin bool
	Days           int // window length; 0 means the default 30
}

// --- Output DTOs ---

// SeriesPoint is one day on a dashboard chart.
type SeriesPoint struct {
	Day          time.Time `json:"day"`
	OrderCount   int64     `json:"order_count"`
	RevenuePaise int64     `json:"revenue_paise"`
}

// TopProduct is one row of the most-viewed products table.
type TopProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Views     int64     `json:"views"`
}

// DashboardOutput is the vendor dashboard payload. Cached is true when the
// payload was served from the read-through cache.
type DashboardOutput struct {
	VendorID     uuid.UUID     `json:"vendor_id"`
	From         time.Time     `json:"from"`
	To           time.Time     `json:"to"`
	OrderCount   int64         `json:"order_count"`
	RevenuePaise int64         `json:"revenue_paise"`
	Series       []SeriesPoint `json:"series"`
	TopProducts  []TopProduct  `json:"top_products"`
	Cached       bool          `json:"-"`
}

// AnalyticsUsecase defines the interface for vendor dashboard metrics and
// the daily rollup job behind them.
type AnalyticsUsecase interface {
	// GetDashboard builds the vendor's dashboard for the requested window,
	// serving from cache when a fresh copy exists. Only the vendor
	// themselves or an admin may ask.
	GetDashboard(ctx context.Context, input *DashboardInput) (*DashboardOutput, error)

	// RollupDay aggregates every active vendor's orders for the given
	// calendar day into the rollup table and invalidates the affected
	// cache entries. Returns how many vendors were rolled up.
	RollupDay(ctx context.Context, day time.Time) (int, error)
}
