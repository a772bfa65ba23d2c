package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
	"tnkr-backend/mocks"
)

// fakeMessageRepo records stored messages in memory.
type fakeMessageRepo struct {
	stored   []domain.Message
	storeErr error
}

func (f *fakeMessageRepo) StoreMessage(m domain.Message) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored = append(f.stored, m)
	return nil
}

func (f *fakeMessageRepo) GetMessagesBetween(_, _ string) ([]domain.Message, error) {
	return f.stored, nil
}

func (f *fakeMessageRepo) GetConversations(_ string) ([]domain.Conversation, error) {
	return nil, nil
}

// fakePusher records every push instead of touching sockets.
type fakePusher struct {
	pushes []struct {
		UserID string
		Event  string
	}
}

func (f *fakePusher) PushToUser(userID, event string, _ any) {
	f.pushes = append(f.pushes, struct {
		UserID string
		Event  string
	}{userID, event})
}

// allowAllLimiter and denyAllLimiter pin the limiter outcome.
type allowAllLimiter struct{}

func (allowAllLimiter) CheckAndRecord(string) bool { return true }

type denyAllLimiter struct{}

func (denyAllLimiter) CheckAndRecord(string) bool { return false }

func chatFixture(t *testing.T) (*ChatService, *mocks.MockIUserRepository, *fakeMessageRepo, *fakePusher) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)
	messages := &fakeMessageRepo{}
	pusher := &fakePusher{}
	svc := NewChatService(users, messages, allowAllLimiter{}, pusher, slog.Default())
	return svc, users, messages, pusher
}

func TestChatService_SendMessage(t *testing.T) {
	senderID := uuid.New().String()
	receiverID := uuid.New().String()
	sender := domain.User{ID: senderID, FirstName: "Alice"}
	receiver := domain.User{ID: receiverID, FirstName: "Bob"}

	t.Run("persists then pushes to the receiver", func(t *testing.T) {
		req := require.New(t)
		svc, users, messages, pusher := chatFixture(t)

		users.EXPECT().GetUserByID(receiverID).Return(receiver, nil)
		users.EXPECT().GetUserByID(senderID).Return(sender, nil)

		message, err := svc.SendMessage(context.Background(), senderID, receiverID, "  hello  ")
		req.NoError(err)
		req.Equal("hello", message.Content, "content must be trimmed")
		req.Equal(senderID, message.SenderID)
		req.Equal("Alice", message.Sender.FirstName)
		req.Equal("Bob", message.Receiver.FirstName)

		req.Len(messages.stored, 1)
		req.Len(pusher.pushes, 1)
		req.Equal(receiverID, pusher.pushes[0].UserID)
		req.Equal(EventNewMessage, pusher.pushes[0].Event)
	})

	t.Run("rejects empty content before any lookup", func(t *testing.T) {
		req := require.New(t)
		svc, _, messages, pusher := chatFixture(t)

		_, err := svc.SendMessage(context.Background(), senderID, receiverID, "   ")
		req.ErrorIs(err, errors.ErrEmptyContent)
		req.Empty(messages.stored)
		req.Empty(pusher.pushes)
	})

	t.Run("rejects missing receiver", func(t *testing.T) {
		svc, _, _, _ := chatFixture(t)
		_, err := svc.SendMessage(context.Background(), senderID, "", "hello")
		require.ErrorIs(t, err, errors.ErrMissingReceiver)
	})

	t.Run("rejects malformed receiver id", func(t *testing.T) {
		svc, _, _, _ := chatFixture(t)
		_, err := svc.SendMessage(context.Background(), senderID, "not-a-uuid", "hello")
		require.ErrorIs(t, err, errors.ErrInvalidReceiver)
	})

	t.Run("rejects unknown receiver without persisting", func(t *testing.T) {
		req := require.New(t)
		svc, users, messages, _ := chatFixture(t)

		users.EXPECT().GetUserByID(receiverID).Return(domain.User{}, errors.ErrUserNotFound)

		_, err := svc.SendMessage(context.Background(), senderID, receiverID, "hello")
		req.ErrorIs(err, errors.ErrUserNotFound)
		req.Empty(messages.stored)
	})

	t.Run("rate limited sends never reach storage", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		users := mocks.NewMockIUserRepository(ctrl)
		messages := &fakeMessageRepo{}
		pusher := &fakePusher{}
		svc := NewChatService(users, messages, denyAllLimiter{}, pusher, slog.Default())

		_, err := svc.SendMessage(context.Background(), senderID, receiverID, "hello")
		req.ErrorIs(err, errors.ErrRateLimited)
		req.Empty(messages.stored)
		req.Empty(pusher.pushes)
	})

	t.Run("storage failure surfaces and suppresses the push", func(t *testing.T) {
		req := require.New(t)
		svc, users, messages, pusher := chatFixture(t)
		messages.storeErr = errors.ErrMessageNotFound

		users.EXPECT().GetUserByID(receiverID).Return(receiver, nil)
		users.EXPECT().GetUserByID(senderID).Return(sender, nil)

		_, err := svc.SendMessage(context.Background(), senderID, receiverID, "hello")
		req.Error(err)
		req.Empty(pusher.pushes, "no push may happen before the message is durable")
	})
}

func TestChatService_GetConversations(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	users := mocks.NewMockIUserRepository(ctrl)

	partnerID := uuid.New().String()
	goneID := uuid.New().String()
	messages := &conversationRepo{conversations: []domain.Conversation{
		{PartnerID: partnerID},
		{PartnerID: goneID},
	}}
	svc := NewChatService(users, messages, allowAllLimiter{}, &fakePusher{}, slog.Default())

	users.EXPECT().GetUserByID(partnerID).Return(domain.User{ID: partnerID, FirstName: "Pat"}, nil)
	users.EXPECT().GetUserByID(goneID).Return(domain.User{}, errors.ErrUserNotFound)

	conversations, err := svc.GetConversations(context.Background(), "me")
	req.NoError(err)
	req.Len(conversations, 2)
	req.Equal("Pat", conversations[0].Partner.FirstName)
	// A vanished partner keeps the conversation, just without display details.
	req.Empty(conversations[1].Partner.FirstName)
}

type conversationRepo struct {
	fakeMessageRepo
	conversations []domain.Conversation
}

func (c *conversationRepo) GetConversations(_ string) ([]domain.Conversation, error) {
	return c.conversations, nil
}
