package service

// Room naming shared by the websocket hub and the use cases that emit into it.
const (
	// UserRoomPrefix scopes events to a single account's open connections.
	UserRoomPrefix = "user:"
	// VendorRoomPrefix scopes events to a vendor's dashboard connections.
	VendorRoomPrefix = "vendor:"
	// ConversationRoomPrefix scopes events to the participants of one chat thread.
	ConversationRoomPrefix = "conversation:"
)

// Event is a typed payload fanned out to every connection in a room.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// EventBroadcaster defines the interface for pushing real-time events to
// connected clients. Use cases emit through this so they never depend on the
// websocket transport directly.
type EventBroadcaster interface {
	// Broadcast delivers the event to every connection in the room.
	// Delivery is best-effort; slow consumers are dropped, not waited on.
	Broadcast(room string, event *Event)

	// HasListeners reports whether any connection is currently in the room.
	// Callers use this to decide between live delivery and a stored
	// notification fallback.
	HasListeners(room string) bool
}
