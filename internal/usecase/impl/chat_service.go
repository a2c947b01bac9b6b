package impl

import (
	"context"
	"log/slog"
	"strings"
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

// maxChatBodyLength caps a single chat message.
const maxChatBodyLength = 4000

// chatService implements the ChatUsecase interface.
type chatService struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	broadcaster service.EventBroadcaster
	notifier    usecase.NotificationUsecase
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for ChatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	ChatRepo    repository.ChatRepository
	UserRepo    repository.UserRepository
	Broadcaster service.EventBroadcaster
	Notifier    usecase.NotificationUsecase
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		chatRepo:    params.ChatRepo,
		userRepo:    params.UserRepo,
		broadcaster: params.Broadcaster,
		notifier:    params.Notifier,
		logger:      params.Logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartConversation finds or creates the thread between a customer and a vendor.
func (srv *chatService) StartConversation(ctx context.Context, customerID, vendorID uuid.UUID) (*entity.Conversation, error) {
	existing, err := srv.chatRepo.FindConversationByParticipants(ctx, customerID, vendorID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrConversationNotFound) {
		return nil, errors.Wrap(err, "failed to find conversation by participants")
	}

	// The vendor end must exist and actually be a vendor.
	vendor, err := srv.userRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to load vendor for conversation")
	}
	if vendor.VendorProfile == nil {
		return nil, domainerrors.ErrValidation.WithDetails("conversations can only be started with vendors")
	}

	conversation := &entity.Conversation{
		CustomerID: customerID,
		VendorID:   vendorID,
		CreatedAt:  time.Now(),
	}

	if err := srv.chatRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, errors.Wrap(err, "failed to create conversation")
	}

	srv.log(ctx).Info("Conversation started",
		slog.Any("conversationID", conversation.ID),
		slog.Any("customerID", customerID),
		slog.Any("vendorID", vendorID))

	return conversation, nil
}

// SendMessage stores the message first, then fans it out to the conversation
// room. An offline recipient gets a stored notification instead of a push.
func (srv *chatService) SendMessage(ctx context.Context, input *usecase.SendMessageInput) (*entity.ChatMessage, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" || len(body) > maxChatBodyLength {
		return nil, domainerrors.ErrValidation.WithDetails("message body must be between 1 and 4000 characters")
	}

	conversation, err := srv.loadConversationFor(ctx, input.ConversationID, input.SenderID)
	if err != nil {
		return nil, err
	}

	message := &entity.ChatMessage{
		ConversationID: conversation.ID,
		SenderID:       input.SenderID,
		Body:           body,
		SentAt:         time.Now(),
	}

	if err := srv.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, errors.Wrap(err, "failed to store chat message")
	}

	srv.broadcaster.Broadcast(service.ConversationRoomPrefix+conversation.ID.String(), &service.Event{
		Type:    "chat_message",
		Payload: message,
	})

	recipient := conversation.Recipient(input.SenderID)
	if !srv.broadcaster.HasListeners(service.UserRoomPrefix + recipient.String()) {
		_, err := srv.notifier.Notify(ctx, &usecase.NotifyInput{
			UserID:  recipient,
			Type:    entity.NotificationMessage,
			Title:   "New message",
			Message: body,
			Data:    map[string]any{"conversation_id": conversation.ID.String()},
		})
		if err != nil {
			srv.log(ctx).Warn("Failed to store offline chat notification",
				slog.Any("conversationID", conversation.ID), slog.Any("error", err))
		}
	}

	return message, nil
}

// ListConversations returns every thread the user takes part in.
func (srv *chatService) ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	conversations, err := srv.chatRepo.ListConversationsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	return conversations, nil
}

// ListMessages returns a conversation's history, oldest first.
func (srv *chatService) ListMessages(ctx context.Context, input *usecase.ListMessagesInput) ([]*entity.ChatMessage, error) {
	conversation, err := srv.loadConversationFor(ctx, input.ConversationID, input.RequesterID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	messages, err := srv.chatRepo.ListMessages(ctx, conversation.ID, limit, input.Offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chat messages")
	}

	return messages, nil
}

// loadConversationFor fetches the thread and enforces membership. Outsiders
// get the same not-found as missing threads, leaking nothing.
func (srv *chatService) loadConversationFor(ctx context.Context, conversationID, userID uuid.UUID) (*entity.Conversation, error) {
	conversation, err := srv.chatRepo.FindConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find conversation")
	}

	if !conversation.IsParticipant(userID) {
		return nil, domainerrors.ErrNotFound
	}

	return conversation, nil
}
