package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SendMessageInput carries one chat message from an authenticated sender.
type SendMessageInput struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Body           string
}

// ListMessagesInput pages through a conversation's history.
type ListMessagesInput struct {
	ConversationID uuid.UUID
	RequesterID    uuid.UUID
	Limit          int
	Offset         int
}

// ChatUsecase defines the interface for customer-vendor messaging. Delivery
// is persist-then-push: the message is stored first, then fanned out to the
// conversation room, with a stored notification for an offline recipient.
type ChatUsecase interface {
	// StartConversation finds or creates the thread between a customer and
	// a vendor. Starting an existing thread returns it unchanged.
	StartConversation(ctx context.Context, customerID, vendorID uuid.UUID) (*entity.Conversation, error)

	// SendMessage stores the message and delivers it to the conversation
	// room. Only participants may send.
	SendMessage(ctx context.Context, input *SendMessageInput) (*entity.ChatMessage, error)

	// ListConversations returns every thread the user takes part in, most
	// recently active first.
	ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error)

	// ListMessages returns a conversation's history, oldest first. Only
	// participants may read.
	ListMessages(ctx context.Context, input *ListMessagesInput) ([]*entity.ChatMessage, error)
}
