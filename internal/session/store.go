// Package session holds the signed-in user of the console.
package session

import (
	"context"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/school-leave-console/internal/model"
)

// Authenticator verifies credentials and hands back a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, creds model.Credentials) (string, error)
	Register(ctx context.Context, reg model.Registration) (string, error)
}

// Store is the only state shared between views. It changes through Login,
// Register, Logout and Restore.
type Store struct {
	mu       sync.RWMutex
	token    string
	identity *model.Identity

	auth    Authenticator
	tokens  TokenStore
	decoder *Decoder
}

func NewStore(auth Authenticator, tokens TokenStore, decoder *Decoder) *Store {
	if decoder == nil {
		decoder = NewDecoder("")
	}
	return &Store{
		auth:    auth,
		tokens:  tokens,
		decoder: decoder,
	}
}

// Restore loads the persisted token. A token that does not decode logs the
// user out; the returned error is informational only.
func (s *Store) Restore(ctx context.Context) error {
	contextLogger := log.WithContext(ctx)
	token, err := s.tokens.Load()
	if err != nil {
		contextLogger.WithError(err).Warn("could not read the persisted session token")
		s.Logout(ctx)
		return err
	}
	if token == "" {
		return nil
	}

	identity, err := s.decoder.Decode(token)
	if err != nil {
		contextLogger.WithError(err).Warn("persisted session token is invalid, logging out")
		s.Logout(ctx)
		return err
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.mu.Unlock()
	contextLogger.WithField("user", identity.Email).Info("session restored")
	return nil
}

func (s *Store) Login(ctx context.Context, creds model.Credentials) (model.Identity, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	token, err := s.auth.Authenticate(ctx, creds)
	if err != nil {
		return model.Identity{}, err
	}
	return s.establish(ctx, token)
}

func (s *Store) Register(ctx context.Context, reg model.Registration) (model.Identity, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	token, err := s.auth.Register(ctx, reg)
	if err != nil {
		return model.Identity{}, err
	}
	return s.establish(ctx, token)
}

func (s *Store) establish(ctx context.Context, token string) (model.Identity, error) {
	contextLogger := log.WithContext(ctx)
	if token == "" {
		contextLogger.Warn("auth service returned an empty token")
		return model.Identity{}, ErrInvalidCredentials
	}
	identity, err := s.decoder.Decode(token)
	if err != nil {
		contextLogger.WithError(err).Warn("auth service returned a token that cannot be decoded")
		return model.Identity{}, ErrInvalidCredentials
	}

	s.mu.Lock()
	s.token = token
	s.identity = identity
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		contextLogger.WithError(err).Error("could not persist the session token, it will not survive a restart")
	}
	contextLogger.WithFields(log.Fields{"user": identity.Email, "role": identity.Role}).Info("signed in")
	return *identity, nil
}

// Logout is idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		log.WithContext(ctx).WithError(err).Error("could not remove the persisted session token")
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.IsAdmin()
}

func (s *Store) Identity() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return model.Identity{}, false
	}
	return *s.identity, true
}

// Token is sent as the bearer credential on backend calls.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
