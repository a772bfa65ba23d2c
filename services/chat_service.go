//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
	"tnkr-backend/repositories"
)

// EventNewMessage is the push event carrying a persisted message to the
// receiver's live connections.
const EventNewMessage = "new message"

type IChatService interface {
	SendMessage(ctx context.Context, senderID, receiverID, content string) (domain.Message, error)
	GetMessagesBetween(ctx context.Context, userID, otherUserID string) ([]domain.Message, error)
	GetConversations(ctx context.Context, userID string) ([]domain.Conversation, error)
}

// IRateLimiter guards the send path. Implementations must fail open when
// their backing store is down.
type IRateLimiter interface {
	CheckAndRecord(identity string) bool
}

// IPusher delivers an event to every live connection of one user. Delivery
// is at most once per connection and zero recipients is not an error; the
// message is already durable by the time a push happens.
type IPusher interface {
	PushToUser(userID string, event string, payload any)
}

type ChatService struct {
	users    repositories.IUserRepository
	messages repositories.IMessageRepository
	limiter  IRateLimiter
	pusher   IPusher
	log      *slog.Logger
}

func NewChatService(users repositories.IUserRepository, messages repositories.IMessageRepository,
	limiter IRateLimiter, pusher IPusher, log *slog.Logger) *ChatService {
	return &ChatService{
		users:    users,
		messages: messages,
		limiter:  limiter,
		pusher:   pusher,
		log:      log,
	}
}

// SendMessage runs the full send pipeline: rate limit, validation, receiver
// lookup, persistence, fan-out. The message is stored before any push is
// attempted, so a failed or missed push only loses the live notification,
// never the message itself. The returned message is what the caller acks to
// the sender, exactly once, regardless of how many devices got the push.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID, content string) (domain.Message, error) {
	if !s.limiter.CheckAndRecord(senderID) {
		return domain.Message{}, errors.ErrRateLimited
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, errors.ErrEmptyContent
	}
	if receiverID == "" {
		return domain.Message{}, errors.ErrMissingReceiver
	}
	if _, err := uuid.Parse(receiverID); err != nil {
		return domain.Message{}, errors.ErrInvalidReceiver
	}

	receiver, err := s.users.GetUserByID(receiverID)
	if err != nil {
		return domain.Message{}, err
	}
	sender, err := s.users.GetUserByID(senderID)
	if err != nil {
		return domain.Message{}, err
	}

	message := domain.Message{
		ID:         uuid.New(),
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    content,
		CreatedAt:  timeNowUTC(),
		Sender:     sender.View(),
		Receiver:   receiver.View(),
	}

	if err := s.messages.StoreMessage(message); err != nil {
		return domain.Message{}, err
	}

	s.pusher.PushToUser(receiver.ID, EventNewMessage, message)

	return message, nil
}

func (s *ChatService) GetMessagesBetween(_ context.Context, userID, otherUserID string) ([]domain.Message, error) {
	return s.messages.GetMessagesBetween(userID, otherUserID)
}

// GetConversations lists the user's conversation partners, most recent
// first. Partner display details come from the user store; a partner whose
// account has since disappeared keeps the conversation with an empty view.
func (s *ChatService) GetConversations(_ context.Context, userID string) ([]domain.Conversation, error) {
	conversations, err := s.messages.GetConversations(userID)
	if err != nil {
		return nil, err
	}

	return lo.Map(conversations, func(conv domain.Conversation, _ int) domain.Conversation {
		partner, err := s.users.GetUserByID(conv.PartnerID)
		if err != nil {
			if !stderrors.Is(err, errors.ErrUserNotFound) {
				s.log.Warn("partner lookup failed", "partner", conv.PartnerID, "error", err)
			}
			return conv
		}
		conv.Partner = partner.View()
		return conv
	}), nil
}
