package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/delivery/http/middleware"
	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ChatUC usecase.ChatUsecase
	Logger *slog.Logger
}

// ChatHandler holds dependencies for customer-vendor messaging handlers.
type ChatHandler struct {
	chatUC usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{
		chatUC: params.ChatUC,
		logger: params.Logger,
	}
}

// StartConversationRequest opens a thread with one vendor.
type StartConversationRequest struct {
	VendorID string `json:"vendor_id" validate:"required,uuid"`
}

// SendMessageRequest carries one chat message body.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=4000"`
}

// StartConversation finds or creates the caller's thread with a vendor.
func (h *ChatHandler) StartConversation(c echo.Context) error {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid conversation input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid vendor ID")
	}

	conversation, err := h.chatUC.StartConversation(c.Request().Context(), customerID, vendorID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, conversation, "Conversation ready")
}

// SendMessage stores and delivers one message in a conversation.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	senderID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid conversation ID")
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	message, err := h.chatUC.SendMessage(c.Request().Context(), &usecase.SendMessageInput{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           req.Body,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, message, "Message sent")
}

// ListConversations returns every thread the caller takes part in.
func (h *ChatHandler) ListConversations(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	conversations, err := h.chatUC.ListConversations(c.Request().Context(), userID,
		intQueryParam(c, "limit"), intQueryParam(c, "offset"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, conversations, "Conversations retrieved")
}

// ListMessages returns a conversation's history for a participant.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid conversation ID")
	}

	messages, err := h.chatUC.ListMessages(c.Request().Context(), &usecase.ListMessagesInput{
		ConversationID: conversationID,
		RequesterID:    userID,
		Limit:          intQueryParam(c, "limit"),
		Offset:         intQueryParam(c, "offset"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, messages, "Messages retrieved")
}
