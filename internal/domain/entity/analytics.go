package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsRollup is a per-vendor per-day aggregate written by the rollup
// job. On-demand queries prefer live aggregation; the rollup rows back the
// historical series and act as the cache-invalidation trigger.
type AnalyticsRollup struct {
	ID           uuid.UUID
	VendorID     uuid.UUID
	Day          time.Time // Midnight UTC of the aggregated day.
	OrderCount   int64
	RevenuePaise int64
	Views        int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
