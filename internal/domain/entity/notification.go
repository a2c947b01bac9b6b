package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies durable notifications for client rendering.
type NotificationType string

const (
	NotificationOrder   NotificationType = "order"
	NotificationMessage NotificationType = "message"
	NotificationReview  NotificationType = "review"
	NotificationVendor  NotificationType = "vendor"
	NotificationSystem  NotificationType = "system"
)

// Notification is the durable record behind every real-time event. It is
// written regardless of whether the recipient had a live connection, so
// offline users catch up on next login. Only the read flag mutates.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Title     string
	Message   string
	Data      []byte // Opaque JSON payload for the client.
	IsRead    bool
	CreatedAt time.Time
}
