//go:generate go run go.uber.org/mock/mockgen -source=token.go -destination=../mocks/mock_token_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
)

type ITokenRepository interface {
	CreateToken(token domain.VerificationToken) error
	GetToken(code string) (domain.VerificationToken, error)
	DeleteToken(code string) error
	DeleteTokensForEmail(email string) error
}

// TokenRepository persists verification and password-reset codes. Expiry is
// checked by the caller against ExpiresAt; stale codes are also swept by a
// "vtoken:email:" scan when a fresh one is issued for the same address.
type TokenRepository struct {
	db *badger.DB
}

func NewTokenRepository(db *badger.DB) ITokenRepository {
	return &TokenRepository{db: db}
}

func tokenKey(code string) []byte { return []byte("vtoken:" + code) }

func tokenEmailKey(email, code string) []byte {
	return []byte(fmt.Sprintf("vtoken:email:%s:%s", email, code))
}

func (r *TokenRepository) CreateToken(token domain.VerificationToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(tokenKey(token.Code), data); err != nil {
			return err
		}
		return txn.Set(tokenEmailKey(token.Email, token.Code), []byte(token.Code))
	})
}

func (r *TokenRepository) GetToken(code string) (domain.VerificationToken, error) {
	var token domain.VerificationToken
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey(code))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &token)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.VerificationToken{}, errors.ErrCodeInvalid
	}
	if err != nil {
		return domain.VerificationToken{}, err
	}
	return token, nil
}

func (r *TokenRepository) DeleteToken(code string) error {
	token, err := r.GetToken(code)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(tokenEmailKey(token.Email, code)); err != nil {
			return err
		}
		return txn.Delete(tokenKey(code))
	})
}

func (r *TokenRepository) DeleteTokensForEmail(email string) error {
	prefix := []byte(fmt.Sprintf("vtoken:email:%s:", email))

	var codes []string
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			code, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			codes = append(codes, string(code))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		for _, code := range codes {
			if err := txn.Delete(tokenEmailKey(email, code)); err != nil {
				return err
			}
			if err := txn.Delete(tokenKey(code)); err != nil {
				return err
			}
		}
		return nil
	})
}
