// Package session owns the console's single operator session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go-fraud-console/internal/apiclient"
	"go-fraud-console/internal/config"
	"go-fraud-console/internal/models"
	"go-fraud-console/internal/storage"

	"go.uber.org/zap"
)

const defaultLoginError = "Login failed"

// Reader is the read-only view of the session handed to the guard and the shell.
type Reader interface {
	State() models.SessionState
}

// Authenticator is the part of the API client the session drives.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
	ResetCredentials()
	Credentials() []apiclient.Credential
	RestoreCredentials(creds []apiclient.Credential)
}

type LoginResult struct {
	Success bool
	Error   string
}

// Store is the only writer of session state. Restore, Login and Logout run one
// at a time; State never waits on them.
type Store struct {
	client        Authenticator
	storage       storage.LocalStorage
	key           string
	logoutTimeout time.Duration
	logger        *zap.Logger

	op sync.Mutex

	mu    sync.RWMutex
	state models.SessionState
}

func NewStore(client Authenticator, local storage.LocalStorage, cfg *config.Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	logoutTimeout := cfg.LogoutTimeout
	if logoutTimeout <= 0 {
		logoutTimeout = 5 * time.Second
	}
	return &Store{
		client:        client,
		storage:       local,
		key:           cfg.SessionKey,
		logoutTimeout: logoutTimeout,
		logger:        logger.Named("session"),
		state:         models.SessionState{Loading: true},
	}
}

// NewReader exposes a Store as its read-only capability.
func NewReader(s *Store) Reader {
	return s
}

func (s *Store) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

// Restore loads the persisted snapshot. Whatever it finds, loading ends.
func (s *Store) Restore(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	user := s.readSnapshot(ctx)

	s.mu.Lock()
	s.state = models.SessionState{
		User:          user,
		Authenticated: user != nil,
		Loading:       false,
	}
	s.mu.Unlock()

	if user != nil {
		s.restoreCredentials(ctx)
		s.logger.Info("Session restored", zap.String("username", user.Username))
	}
}

// credentialsKey sits next to the identity snapshot so each can be read or
// dropped on its own.
func (s *Store) credentialsKey() string {
	return s.key + "_credentials"
}

// restoreCredentials hands the saved cookies back to the client. Without them
// the first API call fails and the usual 401 path logs the operator out.
func (s *Store) restoreCredentials(ctx context.Context) {
	raw, err := s.storage.Get(ctx, s.credentialsKey())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to read session credentials", zap.Error(err))
		}
		return
	}
	var creds []apiclient.Credential
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		s.logger.Warn("Ignoring malformed session credentials", zap.Error(err))
		return
	}
	s.client.RestoreCredentials(creds)
}

func (s *Store) persistCredentials(ctx context.Context) {
	blob, err := json.Marshal(s.client.Credentials())
	if err != nil {
		s.logger.Error("Failed to encode session credentials", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.credentialsKey(), string(blob)); err != nil {
		s.logger.Error("Failed to persist session credentials", zap.Error(err))
	}
}

func (s *Store) readSnapshot(ctx context.Context) *models.Admin {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Failed to read session snapshot", zap.Error(err))
		}
		return nil
	}

	var admin models.Admin
	if err := json.Unmarshal([]byte(raw), &admin); err != nil {
		s.logger.Warn("Ignoring malformed session snapshot", zap.Error(err))
		return nil
	}
	if strings.TrimSpace(admin.Username) == "" {
		s.logger.Warn("Ignoring session snapshot without username")
		return nil
	}
	return &admin
}

// Login authenticates against the API. State changes only on success.
func (s *Store) Login(ctx context.Context, username, password string) LoginResult {
	s.op.Lock()
	defer s.op.Unlock()

	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		s.logger.Info("Login rejected", zap.String("username", username), zap.Error(err))
		return LoginResult{Error: failureMessage(apiclient.Message(err))}
	}
	if !resp.Success || resp.Admin == nil || resp.Admin.Username == "" {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		s.logger.Info("Login rejected", zap.String("username", username), zap.String("reason", msg))
		return LoginResult{Error: failureMessage(msg)}
	}

	admin := *resp.Admin
	if blob, err := json.Marshal(admin); err != nil {
		s.logger.Error("Failed to encode session snapshot", zap.Error(err))
	} else if err := s.storage.Set(ctx, s.key, string(blob)); err != nil {
		// the in-memory session still stands; it just won't survive a restart
		s.logger.Error("Failed to persist session snapshot", zap.Error(err))
	}
	s.persistCredentials(ctx)

	s.mu.Lock()
	s.state = models.SessionState{User: &admin, Authenticated: true}
	s.mu.Unlock()

	s.logger.Info("Logged in", zap.String("username", admin.Username))
	return LoginResult{Success: true}
}

// Logout tells the API the session is over, then clears local state no matter
// how that call went.
func (s *Store) Logout(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.logoutTimeout)
	if err := s.client.Logout(callCtx); err != nil {
		s.logger.Warn("Remote logout failed", zap.Error(err))
	}
	cancel()

	s.client.ResetCredentials()
	cleanupCtx := context.WithoutCancel(ctx)
	if err := s.storage.Delete(cleanupCtx, s.key); err != nil {
		s.logger.Error("Failed to delete session snapshot", zap.Error(err))
	}
	if err := s.storage.Delete(cleanupCtx, s.credentialsKey()); err != nil {
		s.logger.Error("Failed to delete session credentials", zap.Error(err))
	}

	s.mu.Lock()
	s.state = models.SessionState{}
	s.mu.Unlock()

	s.logger.Info("Logged out")
}

func failureMessage(msg string) string {
	if msg = strings.TrimSpace(msg); msg != "" {
		return msg
	}
	return defaultLoginError
}
