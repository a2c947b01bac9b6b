package repository

import (
	"context"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"

	"github.com/google/uuid"
)

// ErrConversationNotFound indicates no conversation matches the lookup.
var ErrConversationNotFound = errors.New("conversation not found")

// ChatRepository persists customer-vendor conversations and their messages.
type ChatRepository interface {
	// CreateConversation stores a new conversation thread.
	CreateConversation(ctx context.Context, conversation *entity.Conversation) error

	// FindConversationByID fetches a single conversation.
	// Returns ErrConversationNotFound when no record matches.
	FindConversationByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)

	// FindConversationByParticipants fetches the thread between a customer
	// and a vendor, if one exists.
	// Returns ErrConversationNotFound when no record matches.
	FindConversationByParticipants(ctx context.Context, customerID, vendorID uuid.UUID) (*entity.Conversation, error)

	// ListConversationsByUser returns every thread the user takes part in,
	// most recently active first.
	ListConversationsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error)

	// CreateMessage appends a message to a conversation and bumps the
	// thread's last-activity time.
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error

	// ListMessages returns a conversation's messages, oldest first.
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*entity.ChatMessage, error)
}
