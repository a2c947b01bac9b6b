package model

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsRollupModel mirrors the 'analytics_rollups' table. The rollup job
// upserts on the (vendor_id, day) pair, so reruns for the same day are safe.
type AnalyticsRollupModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_rollup_vendor_day,priority:1"`
	Day          time.Time `gorm:"not null;uniqueIndex:uniq_rollup_vendor_day,priority:2"`
	OrderCount   int64     `gorm:"not null;default:0"`
	RevenuePaise int64     `gorm:"not null;default:0"`
	Views        int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AnalyticsRollupModel) TableName() string {
	return "analytics_rollups"
}
