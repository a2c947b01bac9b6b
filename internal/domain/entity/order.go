package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks fulfilment progress for an order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a customer purchase from a single vendor. Orders feed the
// analytics rollups and count against the MaxOrders entitlement.
type Order struct {
	ID          uuid.UUID
	VendorID    uuid.UUID
	CustomerID  uuid.UUID
	AmountPaise int64
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
