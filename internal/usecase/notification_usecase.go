package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// NotifyInput describes an event to deliver to one user.
type NotifyInput struct {
	UserID  uuid.UUID
	Type    entity.NotificationType
	Title   string
	Message string
	Data    map[string]any
}

// ListNotificationsInput pages through a user's notifications.
type ListNotificationsInput struct {
	UserID     uuid.UUID
	OnlyUnread bool
	Limit      int
	Offset     int
}

// --- Output DTOs ---

// ListNotificationsOutput is one page of notifications plus the unread total.
type ListNotificationsOutput struct {
	Notifications []*entity.Notification
	UnreadCount   int64
}

// NotificationUsecase defines the interface for persisted notifications and
// their real-time delivery.
type NotificationUsecase interface {
	// Notify stores the notification and pushes it to the user's open
	// connections. Storage always happens; the push is best-effort.
	Notify(ctx context.Context, input *NotifyInput) (*entity.Notification, error)

	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error)

	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error

	// MarkAllRead flags all of the user's notifications as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
