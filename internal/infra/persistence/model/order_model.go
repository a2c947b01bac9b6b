package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. The composite index backs the
// per-vendor time-range aggregations used by analytics.
type OrderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_vendor_created,priority:1"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountPaise int64     `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time `gorm:"index:idx_orders_vendor_created,priority:2"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
