package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable direct message between two users. It is created
// only through the validated send path and carries denormalized sender and
// receiver projections so history reads need no extra lookups.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Sender     UserView  `json:"sender"`
	Receiver   UserView  `json:"receiver"`
}

// Conversation summarizes the message exchange with one partner.
type Conversation struct {
	PartnerID     string    `json:"conversationId"`
	Partner       UserView  `json:"otherUser"`
	LastMessage   *Message  `json:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}
