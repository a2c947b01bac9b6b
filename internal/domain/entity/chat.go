package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation links a customer and a vendor for direct messaging. Room
// membership for the real-time relay is checked against this record.
type Conversation struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	VendorID   uuid.UUID
	CreatedAt  time.Time
}

// IsParticipant reports whether the given user belongs to the conversation.
func (c *Conversation) IsParticipant(userID uuid.UUID) bool {
	return c.CustomerID == userID || c.VendorID == userID
}

// Recipient returns the other participant for a sender within the conversation.
func (c *Conversation) Recipient(senderID uuid.UUID) uuid.UUID {
	if c.CustomerID == senderID {
		return c.VendorID
	}

	return c.CustomerID
}

// ChatMessage is a persisted message inside a conversation. Messages are
// written before any fan-out so delivery never depends on live connections.
type ChatMessage struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	Body           string
	SentAt         time.Time
}
