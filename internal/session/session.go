package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gigx/internal/models"
	"github.com/desertthunder/gigx/internal/shared"
)

// Hand-off keys carry a value across one navigation and are consumed on read.
const (
	HandoffSelectedArtist   = "selected_artist_id"
	HandoffMessageRecipient = "message_recipient_id"

	tokenKey = "access_token"
)

// Store persists string values by key. [repositories.StateRepository] is the SQLite implementation.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Take(key string) (string, error)
}

// Session is the explicit replacement for page-global auth state.
type Session struct {
	mu     sync.RWMutex
	token  string
	user   *models.User
	store  Store
	nav    Navigator
	logger *log.Logger
}

// New creates a signed-out session. A nil nav ignores navigation.
func New(store Store, nav Navigator, logger *log.Logger) *Session {
	if nav == nil {
		nav = NopNavigator{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{store: store, nav: nav, logger: logger}
}

// Load restores the token from storage. A missing token leaves the session signed out.
func (s *Session) Load() error {
	token, err := s.store.Get(tokenKey)
	if errors.Is(err, shared.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Token returns the bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, nil until fetched.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// HasRole reports whether the current user is known and has role.
func (s *Session) HasRole(role models.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == role
}

// SetToken stores the token in memory and in the store.
func (s *Session) SetToken(token string) error {
	if err := s.store.Set(tokenKey, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// SetUser records the current user. The user is never persisted.
func (s *Session) SetUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return
	}
	cp := *u
	s.user = &cp
}

func (s *Session) clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Delete(tokenKey); err != nil {
		return fmt.Errorf("failed to clear stored token: %w", err)
	}
	return nil
}

// Logout drops the token and user, then navigates to [PageEntry].
func (s *Session) Logout() error {
	err := s.clear()
	s.nav.Navigate(PageEntry)
	return err
}

// Expire is Logout for a rejected token. Storage errors are logged rather than returned.
func (s *Session) Expire() {
	s.logger.Warn("session expired, signing out")
	if err := s.clear(); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
	s.nav.Navigate(PageEntry)
}

// Navigate forwards to the session's [Navigator].
func (s *Session) Navigate(p Page) {
	s.nav.Navigate(p)
}

// SetHandoff stores value under key for the next page.
func (s *Session) SetHandoff(key, value string) error {
	if err := s.store.Set(key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// TakeHandoff returns and removes the value under key. ok is false when nothing was handed off.
func (s *Session) TakeHandoff(key string) (value string, ok bool, err error) {
	value, err = s.store.Take(key)
	if errors.Is(err, shared.ErrStateNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

// TakeHandoffID is [Session.TakeHandoff] for numeric ids.
func (s *Session) TakeHandoffID(key string) (int, bool, error) {
	value, ok, err := s.TakeHandoff(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s is not an id: %q", shared.ErrInvalidInput, key, value)
	}
	return id, true, nil
}
