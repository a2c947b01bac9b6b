package model

import (
	"time"

	"github.com/google/uuid"
)

// ConversationModel mirrors the 'conversations' table. The unique composite
// index guarantees at most one thread per customer-vendor pair.
type ConversationModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_conversation_pair,priority:1"`
	VendorID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_conversation_pair,priority:2;index"`
	CreatedAt  time.Time

	// Associations
	Messages []ChatMessageModel `gorm:"foreignKey:ConversationID"`
}

// TableName explicitly sets the table name for GORM.
func (ConversationModel) TableName() string {
	return "conversations"
}

// ChatMessageModel mirrors the 'chat_messages' table.
type ChatMessageModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_conversation_sent,priority:1"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null"`
	Body           string    `gorm:"type:text;not null"`
	SentAt         time.Time `gorm:"index:idx_chat_messages_conversation_sent,priority:2"`
}

// TableName explicitly sets the table name for GORM.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}
