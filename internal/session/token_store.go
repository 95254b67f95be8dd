package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const filePerm = 0600

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type persistedToken struct {
	Token string `json:"token"`
}

// FileTokenStore keeps the token in a single JSON file readable only by the owner.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load returns an empty token when nothing has been persisted.
func (f *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("session: read token file: %w", err)
	}

	var p persistedToken
	if err := json.Unmarshal(b, &p); err != nil {
		return "", fmt.Errorf("%w: token file is not valid json", ErrUndecodableToken)
	}
	return p.Token, nil
}

func (f *FileTokenStore) Save(token string) error {
	b, err := json.MarshalIndent(persistedToken{Token: token}, "", " ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, b, filePerm); err != nil {
		return fmt.Errorf("session: write token file: %w", err)
	}
	return nil
}

func (f *FileTokenStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: remove token file: %w", err)
	}
	return nil
}
