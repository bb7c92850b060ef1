package store

import (
	"sync"

	"storefront/models"

	"go.uber.org/zap"
)

// AuthPersistFunc writes the session snapshot (user + token + derived flag,
// never secrets) to durable storage.
type AuthPersistFunc func(snap models.SessionSnapshot) error

// AuthStore tracks one session's authentication state: at most one user and
// an opaque access token. IsAuthenticated is derived, true iff both are
// present. The store does not call the auth provider itself; the session
// manager orchestrates login, signup and logout around it.
type AuthStore struct {
	mu      sync.Mutex
	user    *models.SessionUser
	token   string
	loading bool
	lastErr string
	persist AuthPersistFunc
	subs    []Subscriber
	logger  *zap.Logger
}

func NewAuthStore(persist AuthPersistFunc, logger *zap.Logger) *AuthStore {
	return &AuthStore{persist: persist, logger: logger}
}

// Hydrate restores a persisted session snapshot without triggering a write.
func (s *AuthStore) Hydrate(snap models.SessionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = snap.User
	s.token = snap.Token
}

func (s *AuthStore) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// SetSession installs the user and token after a successful login or signup
// and clears any previous error message.
func (s *AuthStore) SetSession(user *models.SessionUser, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
	s.lastErr = ""
	s.afterMutation()
}

// SetUser replaces the user in place, keeping the current token. Used after
// a profile update.
func (s *AuthStore) SetUser(user *models.SessionUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.afterMutation()
}

// Clear tears down the session completely. Clearing the cart is the session
// manager's job, sequenced after this call.
func (s *AuthStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.lastErr = ""
	s.afterMutation()
}

// SetError records the human-readable failure message from the last login,
// signup or profile-update attempt.
func (s *AuthStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *AuthStore) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// SetLoading marks an in-flight provider call. The flag is never persisted.
func (s *AuthStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// User returns a copy of the current user, or nil when anonymous.
func (s *AuthStore) User() *models.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated is true iff both user and token are set.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// Snapshot returns the persistable view of the session.
func (s *AuthStore) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *AuthStore) snapshotLocked() models.SessionSnapshot {
	var user *models.SessionUser
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return models.SessionSnapshot{
		User:            user,
		Token:           s.token,
		IsAuthenticated: s.user != nil && s.token != "",
	}
}

// afterMutation persists the snapshot best-effort and notifies subscribers.
// Callers must hold the lock.
func (s *AuthStore) afterMutation() {
	if s.persist != nil {
		if err := s.persist(s.snapshotLocked()); err != nil && s.logger != nil {
			s.logger.Warn("session snapshot write failed", zap.Error(err))
		}
	}
	for _, fn := range s.subs {
		fn()
	}
}
