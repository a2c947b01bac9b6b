package repository

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// AnalyticsRepository stores per-vendor per-day rollups produced by the
// nightly aggregation job.
type AnalyticsRepository interface {
	// UpsertDay writes the rollup for one vendor-day, replacing any
	// previous value for the same key.
	UpsertDay(ctx context.Context, rollup *entity.AnalyticsRollup) error

	// ListRange returns the vendor's rollups with Day within [from, to),
	// ascending.
	ListRange(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*entity.AnalyticsRollup, error)

	// ActiveVendorIDs returns vendors that had any order activity within
	// [from, to), for the rollup job to iterate.
	ActiveVendorIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error)
}
