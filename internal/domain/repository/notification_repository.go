package repository

import (
	"context"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"

	"github.com/google/uuid"
)

// ErrNotificationNotFound indicates the notification does not exist or is
// owned by a different user.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository stores per-user notifications for later retrieval.
type NotificationRepository interface {
	// Create stores a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)

	// CountUnread returns the user's unread notification count.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead flags a single notification as read. The update is scoped to
	// the owning user; ErrNotificationNotFound is returned otherwise.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error

	// MarkAllRead flags every unread notification for the user as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
