package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HandlerParams holds dependencies for the websocket Handler, injected by Fx.
type HandlerParams struct {
	fx.In

	Hub      *Hub
	TokenSvc service.TokenService
	ChatRepo repository.ChatRepository
	Logger   *slog.Logger
}

// Handler upgrades authenticated HTTP requests into hub connections.
type Handler struct {
	hub      *Hub
	tokenSvc service.TokenService
	chatRepo repository.ChatRepository
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler is the constructor for the websocket Handler.
func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		hub:      params.Hub,
		tokenSvc: params.TokenSvc,
		chatRepo: params.ChatRepo,
		logger:   params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// clientCommand is the inbound control message for room membership.
type clientCommand struct {
	Action         string `json:"action"` // "join" or "leave"
	ConversationID string `json:"conversation_id"`
}

// Serve authenticates the request and runs the connection until it closes.
// The token comes from the "token" query parameter, since browsers cannot
// set headers on websocket upgrades.
func (h *Handler) Serve(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token = strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
	}

	claims, err := h.tokenSvc.ValidateToken(token)
	if err != nil || claims.Type != "access" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return nil // Upgrade already wrote the error response.
	}

	client := newClient(conn)
	h.hub.join(client, service.UserRoomPrefix+claims.UserID.String())
	for _, role := range claims.Roles {
		if role == "vendor" {
			h.hub.join(client, service.VendorRoomPrefix+claims.UserID.String())
		}
	}

	go client.writePump()
	h.readPump(c, client, claims.UserID)

	return nil
}

// readPump consumes control messages until the connection drops, then
// removes the client from every room.
func (h *Handler) readPump(c echo.Context, client *client, userID uuid.UUID) {
	defer func() {
		h.hub.unregister(client)
		client.close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			continue
		}
		h.handleCommand(c, client, userID, &cmd)
	}
}

// handleCommand processes one join/leave request. Joining a conversation
// room requires being a participant of that conversation.
func (h *Handler) handleCommand(c echo.Context, client *client, userID uuid.UUID, cmd *clientCommand) {
	conversationID, err := uuid.Parse(cmd.ConversationID)
	if err != nil {
		return
	}
	room := service.ConversationRoomPrefix + conversationID.String()

	switch cmd.Action {
	case "leave":
		h.hub.leave(client, room)
	case "join":
		conversation, err := h.chatRepo.FindConversationByID(c.Request().Context(), conversationID)
		if err != nil {
			return
		}
		if !conversation.IsParticipant(userID) {
			h.logger.Warn("Rejected conversation room join",
				slog.String("userID", userID.String()),
				slog.String("conversationID", conversationID.String()))
			return
		}
		h.hub.join(client, room)
	}
}
