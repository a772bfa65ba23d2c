//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"tnkr-backend/domain"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessagesBetween(userA, userB string) ([]domain.Message, error)
	GetConversations(userID string) ([]domain.Conversation, error)
}

// MessageRepository persists direct messages in BadgerDB.
//
// Messages between two users share a canonical pair prefix, with the key
// formatted as "msg:{pair}:{timestamp_padded}:{uuid}":
//  1. 19-digit zero padding keeps prefix scans in chronological order.
//  2. The UUID suffix disambiguates two messages landing on the same
//     nanosecond.
//
// A secondary "conv:{user}:{partner}" entry tracks the latest message per
// conversation so the conversation listing never scans message history.
type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) IMessageRepository {
	return &MessageRepository{db: db, log: log}
}

// convMarker is the value stored under conv keys: where the latest message
// lives and when it was sent.
type convMarker struct {
	MessageKey string    `json:"messageKey"`
	At         time.Time `json:"at"`
}

// pairID is identical regardless of who sent first, so both directions of a
// conversation land under one prefix.
func pairID(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + "|" + userB
}

func messageKey(m domain.Message) string {
	return fmt.Sprintf("msg:%s:%019d:%s", pairID(m.SenderID, m.ReceiverID), m.CreatedAt.UnixNano(), m.ID)
}

func convKey(owner, partner string) string {
	return fmt.Sprintf("conv:%s:%s", owner, partner)
}

func (r *MessageRepository) StoreMessage(message domain.Message) error {
	key := messageKey(message)
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	marker, err := json.Marshal(convMarker{MessageKey: key, At: message.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), data); err != nil {
			return err
		}
		if err := txn.Set([]byte(convKey(message.SenderID, message.ReceiverID)), marker); err != nil {
			return err
		}
		return txn.Set([]byte(convKey(message.ReceiverID, message.SenderID)), marker)
	})
}

// GetMessagesBetween returns the full exchange between two users ordered by
// creation time ascending. Ordering falls out of the padded timestamp in the
// key, no post-sort needed.
func (r *MessageRepository) GetMessagesBetween(userA, userB string) ([]domain.Message, error) {
	prefix := []byte(fmt.Sprintf("msg:%s:", pairID(userA, userB)))

	var messages []domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var m domain.Message
				if err := json.Unmarshal(val, &m); err != nil {
					return err
				}
				messages = append(messages, m)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetConversations lists every partner the user has exchanged messages with,
// most recent activity first, each with its latest message. Partner display
// details are filled in by the caller.
func (r *MessageRepository) GetConversations(userID string) ([]domain.Conversation, error) {
	prefix := []byte(fmt.Sprintf("conv:%s:", userID))

	var conversations []domain.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			partner := strings.TrimPrefix(string(it.Item().Key()), string(prefix))

			var marker convMarker
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &marker)
			})
			if err != nil {
				return err
			}

			item, err := txn.Get([]byte(marker.MessageKey))
			if err != nil {
				// Marker pointing at a vanished message; skip rather than
				// failing the whole listing.
				r.log.Warn("dangling conversation marker", "user_id", userID, "partner", partner)
				continue
			}
			var last domain.Message
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &last) }); err != nil {
				return err
			}

			conversations = append(conversations, domain.Conversation{
				PartnerID:     partner,
				LastMessage:   &last,
				LastMessageAt: marker.At,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})
	return conversations, nil
}
