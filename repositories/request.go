//go:generate go run go.uber.org/mock/mockgen -source=request.go -destination=../mocks/mock_request_repository.go -package=mocks
package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
)

type IRequestRepository interface {
	CreateRequest(request domain.Request) (domain.Request, error)
	GetRequest(id string) (domain.Request, error)
	UpdateRequest(request domain.Request) error
	ListByUserAndStatus(userID, status string) ([]domain.Request, error)
	ListOpen() ([]domain.Request, error)
	DeleteRequest(id string) error
}

// RequestRepository persists service requests. The record lives under
// "request:{id}"; "request:user:{user}:{timestamp_padded}:{id}" indexes a
// user's requests in creation order for the listings.
type RequestRepository struct {
	db *badger.DB
}

func NewRequestRepository(db *badger.DB) IRequestRepository {
	return &RequestRepository{db: db}
}

func requestKey(id string) []byte { return []byte("request:" + id) }

func requestIndexKey(r domain.Request) []byte {
	return []byte(fmt.Sprintf("request:user:%s:%019d:%s", r.UserID, r.CreatedAt.UnixNano(), r.ID))
}

func (r *RequestRepository) CreateRequest(request domain.Request) (domain.Request, error) {
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now().UTC()
	if request.Status == "" {
		request.Status = domain.RequestStatusOpen
	}

	data, err := json.Marshal(request)
	if err != nil {
		return domain.Request{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(requestKey(request.ID), data); err != nil {
			return err
		}
		return txn.Set(requestIndexKey(request), []byte(request.ID))
	})
	if err != nil {
		return domain.Request{}, err
	}
	return request, nil
}

func (r *RequestRepository) GetRequest(id string) (domain.Request, error) {
	var request domain.Request
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(requestKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &request)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.Request{}, errors.ErrRequestNotFound
	}
	if err != nil {
		return domain.Request{}, err
	}
	return request, nil
}

func (r *RequestRepository) UpdateRequest(request domain.Request) error {
	data, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(requestKey(request.ID)); err != nil {
			return err
		}
		return txn.Set(requestKey(request.ID), data)
	})
	if err == badger.ErrKeyNotFound {
		return errors.ErrRequestNotFound
	}
	return err
}

func (r *RequestRepository) ListByUserAndStatus(userID, status string) ([]domain.Request, error) {
	prefix := []byte(fmt.Sprintf("request:user:%s:", userID))

	var requests []domain.Request
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			item, err := txn.Get(requestKey(string(id)))
			if err != nil {
				return err
			}
			var request domain.Request
			if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &request) }); err != nil {
				return err
			}
			if status == "" || strings.EqualFold(request.Status, status) {
				requests = append(requests, request)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListOpen returns every open request across all users, the marketplace feed
// technicians browse. Primary records only; the "request:user:" index keys
// share the prefix and are skipped.
func (r *RequestRepository) ListOpen() ([]domain.Request, error) {
	prefix := []byte("request:")
	indexPrefix := []byte("request:user:")

	var requests []domain.Request
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if bytes.HasPrefix(it.Item().Key(), indexPrefix) {
				continue
			}
			var request domain.Request
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &request)
			})
			if err != nil {
				return err
			}
			if request.Status == domain.RequestStatusOpen {
				requests = append(requests, request)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepository) DeleteRequest(id string) error {
	request, err := r.GetRequest(id)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(requestIndexKey(request)); err != nil {
			return err
		}
		return txn.Delete(requestKey(id))
	})
}
