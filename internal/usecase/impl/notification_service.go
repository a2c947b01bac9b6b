package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
// Storage-first: the durable record is written before any live push, so a
// dropped connection never loses a notification.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	broadcaster      service.EventBroadcaster
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	Broadcaster      service.EventBroadcaster
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		broadcaster:      params.Broadcaster,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Notify stores the notification, then pushes it to the user's open connections.
func (srv *notificationService) Notify(ctx context.Context, input *usecase.NotifyInput) (*entity.Notification, error) {
	var payload []byte
	if input.Data != nil {
		encoded, err := json.Marshal(input.Data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode notification data")
		}
		payload = encoded
	}

	notification := &entity.Notification{
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		Data:      payload,
		CreatedAt: time.Now(),
	}

	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to store notification")
	}

	room := service.UserRoomPrefix + input.UserID.String()
	srv.broadcaster.Broadcast(room, &service.Event{
		Type:    "notification",
		Payload: notification,
	})

	srv.log(ctx).Debug("Notification delivered",
		slog.Any("userID", input.UserID),
		slog.String("type", string(input.Type)),
		slog.Bool("live", srv.broadcaster.HasListeners(room)))

	return notification, nil
}

// ListNotifications returns the user's notifications, newest first.
func (srv *notificationService) ListNotifications(ctx context.Context, input *usecase.ListNotificationsInput) (*usecase.ListNotificationsOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	notifications, err := srv.notificationRepo.ListByUser(ctx, input.UserID, input.OnlyUnread, limit, input.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	unread, err := srv.notificationRepo.CountUnread(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count unread notifications")
	}

	return &usecase.ListNotificationsOutput{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead flags one of the user's notifications as read.
func (srv *notificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	if err := srv.notificationRepo.MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

// MarkAllRead flags all of the user's notifications as read.
func (srv *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := srv.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to mark notifications read")
	}

	return nil
}
