//go:generate go run go.uber.org/mock/mockgen -source=technician.go -destination=../mocks/mock_technician_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
)

type ITechnicianRepository interface {
	UpsertProfile(profile domain.TechnicianProfile) (domain.TechnicianProfile, error)
	GetProfile(userID string) (domain.TechnicianProfile, error)
	SetVerified(userID string, verified bool) error
	ListPending() ([]domain.TechnicianProfile, error)
}

// TechnicianRepository persists technician profiles keyed by the owning
// user, one profile per technician.
type TechnicianRepository struct {
	db *badger.DB
}

func NewTechnicianRepository(db *badger.DB) ITechnicianRepository {
	return &TechnicianRepository{db: db}
}

const technicianPrefix = "technician:"

func technicianKey(userID string) []byte { return []byte(technicianPrefix + userID) }

func (r *TechnicianRepository) UpsertProfile(profile domain.TechnicianProfile) (domain.TechnicianProfile, error) {
	profile.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(profile)
	if err != nil {
		return domain.TechnicianProfile{}, fmt.Errorf("marshal failed: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(technicianKey(profile.UserID), data)
	})
	if err != nil {
		return domain.TechnicianProfile{}, err
	}
	return profile, nil
}

func (r *TechnicianRepository) GetProfile(userID string) (domain.TechnicianProfile, error) {
	var profile domain.TechnicianProfile
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(technicianKey(userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.TechnicianProfile{}, errors.ErrProfileNotFound
	}
	if err != nil {
		return domain.TechnicianProfile{}, err
	}
	return profile, nil
}

func (r *TechnicianRepository) SetVerified(userID string, verified bool) error {
	profile, err := r.GetProfile(userID)
	if err != nil {
		return err
	}
	profile.IsVerified = verified
	_, err = r.UpsertProfile(profile)
	return err
}

// ListPending scans all profiles and keeps the unverified ones. The admin
// review queue is small by nature, so a prefix scan is fine here.
func (r *TechnicianRepository) ListPending() ([]domain.TechnicianProfile, error) {
	prefix := []byte(technicianPrefix)

	var pending []domain.TechnicianProfile
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var profile domain.TechnicianProfile
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &profile)
			})
			if err != nil {
				return err
			}
			if !profile.IsVerified {
				pending = append(pending, profile)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}
