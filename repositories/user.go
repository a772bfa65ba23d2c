//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
)

type IUserRepository interface {
	CreateUser(user domain.User) (domain.User, error)
	GetUserByID(id string) (domain.User, error)
	GetUserByEmail(email string) (domain.User, error)
	GetUserByUsername(username string) (domain.User, error)
	UpdateUser(user domain.User) error
}

// UserRepository persists users in BadgerDB. The primary record lives under
// "user:id:{id}"; "user:email:{email}" and "user:username:{username}" hold
// the id so uniqueness checks and lookups stay single-key reads.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

func userKey(id string) []byte       { return []byte("user:id:" + id) }
func emailKey(email string) []byte   { return []byte("user:email:" + email) }
func usernameKey(name string) []byte { return []byte("user:username:" + name) }

// CreateUser assigns a fresh id and persists the user. Username and email
// uniqueness are enforced inside one transaction so two racing registrations
// cannot both claim the same handle.
func (r *UserRepository) CreateUser(user domain.User) (domain.User, error) {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now().UTC()

	data, err := json.Marshal(user)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal failed: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(usernameKey(user.Username)); err == nil {
			return errors.ErrUserAlreadyExists
		}
		if _, err := txn.Get(emailKey(user.Email)); err == nil {
			return errors.ErrEmailAlreadyExists
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		if err := txn.Set(emailKey(user.Email), []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set(usernameKey(user.Username), []byte(user.ID))
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(id string) (domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(email string) (domain.User, error) {
	return r.getByIndex(emailKey(email))
}

func (r *UserRepository) GetUserByUsername(username string) (domain.User, error) {
	return r.getByIndex(usernameKey(username))
}

func (r *UserRepository) getByIndex(indexKey []byte) (domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey)
		if err != nil {
			return err
		}
		var id []byte
		if id, err = item.ValueCopy(nil); err != nil {
			return err
		}
		item, err = txn.Get(userKey(string(id)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.User{}, errors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UpdateUser rewrites the primary record. Email and username are immutable
// through this path, so the index keys are left untouched.
func (r *UserRepository) UpdateUser(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(user.ID)); err != nil {
			return err
		}
		return txn.Set(userKey(user.ID), data)
	})
	if err == badger.ErrKeyNotFound {
		return errors.ErrUserNotFound
	}
	return err
}
