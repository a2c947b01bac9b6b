package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// chatRepository implements the repository.ChatRepository interface.
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository is the constructor for chatRepository.
func NewChatRepository(db *gorm.DB) repository.ChatRepository {
	return &chatRepository{
		db: db,
	}
}

// CreateConversation persists a new conversation. The unique pair index means
// a concurrent create for the same pair surfaces as a duplicate.
func (repo *chatRepository) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	conversationM := fromConversationDomain(conversation)

	if err := repo.db.WithContext(ctx).Create(conversationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("conversation already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("invalid participant reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create conversation")
	}

	conversation.ID = conversationM.ID
	conversation.CreatedAt = conversationM.CreatedAt

	return nil
}

// FindConversationByID retrieves a conversation by its unique ID.
func (repo *chatRepository) FindConversationByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var conversationM model.ConversationModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&conversationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConversationNotFound
		}

		return nil, errors.Wrap(err, "failed to find conversation by ID")
	}

	return toConversationDomain(&conversationM), nil
}

// FindConversationByParticipants retrieves the conversation between a
// customer and a vendor, if one exists.
func (repo *chatRepository) FindConversationByParticipants(ctx context.Context, customerID, vendorID uuid.UUID) (*entity.Conversation, error) {
	var conversationM model.ConversationModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ? AND vendor_id = ?", customerID, vendorID).
		First(&conversationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConversationNotFound
		}

		return nil, errors.Wrap(err, "failed to find conversation by participants")
	}

	return toConversationDomain(&conversationM), nil
}

// ListConversationsByUser returns conversations the user participates in on
// either side, newest first.
func (repo *chatRepository) ListConversationsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error) {
	var models []*model.ConversationModel

	if err := repo.db.WithContext(ctx).
		Where("customer_id = ? OR vendor_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list conversations by user")
	}

	conversations := make([]*entity.Conversation, 0, len(models))
	for _, conversationM := range models {
		conversations = append(conversations, toConversationDomain(conversationM))
	}

	return conversations, nil
}

// CreateMessage persists a new chat message.
func (repo *chatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	messageM := fromChatMessageDomain(message)

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrConversationNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create chat message")
	}

	message.ID = messageM.ID
	message.SentAt = messageM.SentAt

	return nil
}

// ListMessages returns a page of a conversation's messages, newest first.
func (repo *chatRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, limit, offset int) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessageModel

	if err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list chat messages")
	}

	messages := make([]*entity.ChatMessage, 0, len(models))
	for _, messageM := range models {
		messages = append(messages, toChatMessageDomain(messageM))
	}

	return messages, nil
}

// toConversationDomain converts a persistence model to a domain entity.
func toConversationDomain(conversationM *model.ConversationModel) *entity.Conversation {
	return &entity.Conversation{
		ID:         conversationM.ID,
		CustomerID: conversationM.CustomerID,
		VendorID:   conversationM.VendorID,
		CreatedAt:  conversationM.CreatedAt,
	}
}

// fromConversationDomain converts a domain entity to a persistence model.
func fromConversationDomain(conversation *entity.Conversation) *model.ConversationModel {
	return &model.ConversationModel{
		ID:         conversation.ID,
		CustomerID: conversation.CustomerID,
		VendorID:   conversation.VendorID,
		CreatedAt:  conversation.CreatedAt,
	}
}

// toChatMessageDomain converts a persistence model to a domain entity.
func toChatMessageDomain(messageM *model.ChatMessageModel) *entity.ChatMessage {
	return &entity.ChatMessage{
		ID:             messageM.ID,
		ConversationID: messageM.ConversationID,
		SenderID:       messageM.SenderID,
		Body:           messageM.Body,
		SentAt:         messageM.SentAt,
	}
}

// fromChatMessageDomain converts a domain entity to a persistence model.
func fromChatMessageDomain(message *entity.ChatMessage) *model.ChatMessageModel {
	return &model.ChatMessageModel{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		Body:           message.Body,
		SentAt:         message.SentAt,
	}
}
