package impl

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNotificationServiceFixture() (usecase.NotificationUsecase, *mockNotificationRepo, *fakeBroadcaster) {
	notificationRepo := new(mockNotificationRepo)
	broadcaster := newFakeBroadcaster()

	svc := NewNotificationService(NotificationServiceParams{
		NotificationRepo: notificationRepo,
		Broadcaster:      broadcaster,
		Logger:           testLogger(),
	})

	return svc, notificationRepo, broadcaster
}

func TestNotificationService_Notify_StoresThenBroadcasts(t *testing.T) {
	svc, notificationRepo, broadcaster := newNotificationServiceFixture()
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == userID && n.Type == entity.NotificationOrder && !n.IsRead
	})).Return(nil)

	notification, err := svc.Notify(ctx, &usecase.NotifyInput{
		UserID:  userID,
		Type:    entity.NotificationOrder,
		Title:   "New order",
		Message: "Order #42 placed",
		Data:    map[string]any{"order_id": "42"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, notification.Data)

	room := service.UserRoomPrefix + userID.String()
	require.Len(t, broadcaster.events[room], 1)
	assert.Equal(t, "notification", broadcaster.events[room][0].Type)
}

func TestNotificationService_Notify_StorageFailureSkipsBroadcast(t *testing.T) {
	svc, notificationRepo, broadcaster := newNotificationServiceFixture()
	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("Create", ctx, mock.Anything).Return(assert.AnError)

	notification, err := svc.Notify(ctx, &usecase.NotifyInput{
		UserID:  userID,
		Type:    entity.NotificationSystem,
		Title:   "t",
		Message: "m",
	})
	assert.Nil(t, notification)
	assert.Error(t, err)
	assert.Empty(t, broadcaster.events)
}

func TestNotificationService_ListNotifications(t *testing.T) {
	svc, notificationRepo, _ := newNotificationServiceFixture()
	ctx := context.Background()
	userID := uuid.New()

	stored := []*entity.Notification{
		{ID: uuid.New(), UserID: userID, Type: entity.NotificationMessage},
	}
	notificationRepo.On("ListByUser", ctx, userID, false, 20, 0).Return(stored, nil)
	notificationRepo.On("CountUnread", ctx, userID).Return(int64(3), nil)

	output, err := svc.ListNotifications(ctx, &usecase.ListNotificationsInput{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, output.Notifications, 1)
	assert.Equal(t, int64(3), output.UnreadCount)
}

func TestNotificationService_MarkRead_WrongOwner(t *testing.T) {
	svc, notificationRepo, _ := newNotificationServiceFixture()
	ctx := context.Background()
	notificationID := uuid.New()
	userID := uuid.New()

	notificationRepo.On("MarkRead", ctx, notificationID, userID).
		Return(repository.ErrNotificationNotFound)

	err := svc.MarkRead(ctx, notificationID, userID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
