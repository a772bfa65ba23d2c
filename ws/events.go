// Package ws is the real-time messaging gateway: it authenticates each
// connection before the upgrade, keeps room membership per user identity,
// and fans persisted messages out to the receiver's live connections.
package ws

import "encoding/json"

// Wire-level event names. These are the client contract and must not change.
const (
	EventSendMessage       = "send message"
	EventNewMessage        = "new message"
	EventJoinConversation  = "join conversation"
	EventLeaveConversation = "leave conversation"
	EventAck               = "ack"
)

// Envelope frames every client<->server event. AckID, when present on a
// client event, asks for an ack envelope carrying the same id back; pushes
// from the server leave it nil.
type Envelope struct {
	Event string          `json:"event"`
	AckID *int64          `json:"ackId,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// SendMessagePayload is the body of a "send message" event.
type SendMessagePayload struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// ConversationPayload is the body of the join/leave conversation events.
type ConversationPayload struct {
	ConversationID string `json:"conversationId"`
}

// AckPayload is returned to the sender, and only to the sender: ok carries
// the persisted message, error carries the reason the send was refused.
type AckPayload struct {
	Status  string `json:"status"`
	Message any    `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
