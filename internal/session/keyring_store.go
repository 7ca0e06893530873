package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const defaultKeyringService = "adminpanel"

// KeyringStore keeps the session in the OS keyring under Service/Account.
type KeyringStore struct {
	Service string
	Account string
}

func NewKeyringStore(account string) KeyringStore {
	if account == "" {
		account = "default"
	}
	return KeyringStore{Service: defaultKeyringService, Account: account}
}

func (s KeyringStore) Load() (Session, error) {
	raw, err := keyring.Get(s.Service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("keyring get: %w", err)
	}
	var out Session
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Session{}, ErrNoSession
	}
	return out, nil
}

func (s KeyringStore) Save(sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := keyring.Set(s.Service, s.Account, string(raw)); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (s KeyringStore) Clear() error {
	if err := keyring.Delete(s.Service, s.Account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
