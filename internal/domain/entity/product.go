package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a storefront listing owned by a vendor. Listings count against
// the vendor subscription's MaxProducts entitlement.
type Product struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	Name        string
	Description string
	Category    string
	PricePaise  int64
	Active      bool
	Views       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
