// ABOUTME: Session store holding the bearer credential and user identity
// ABOUTME: Notifies subscribers when a session is established

package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iamkayleb/universal-booking-platform/internal/client"
)

// Session is the client-local record of a successful login. The credential is
// opaque; there is no client-side expiry or renewal.
type Session struct {
	Token    string
	Identity string
}

// SessionStore manages the single session for this process. The session is
// absent until Login succeeds and lives until the process exits.
type SessionStore struct {
	mu          sync.Mutex
	api         *client.Client
	session     Session
	present     bool
	subscribers []func(context.Context, Session)
}

// NewSessionStore creates an empty session store
func NewSessionStore(api *client.Client) *SessionStore {
	return &SessionStore{api: api}
}

// Subscribe registers a callback invoked after a session is established.
// Subscriptions must be wired before the first Login call.
func (s *SessionStore) Subscribe(fn func(context.Context, Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Login submits credentials to the server. On success the session is stored
// and subscribers are notified; on failure the session remains absent and a
// *client.AuthenticationError is returned.
func (s *SessionStore) Login(ctx context.Context, username, password string) (Session, error) {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		slog.Warn("login rejected", "username", username, "error", err)
		return Session{}, err
	}

	sess := Session{Token: token.AccessToken, Identity: username}

	s.mu.Lock()
	s.session = sess
	s.present = true
	subscribers := make([]func(context.Context, Session), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	slog.Info("session established", "identity", username)

	for _, fn := range subscribers {
		fn(ctx, sess)
	}

	return sess, nil
}

// Current returns the active session, if any
func (s *SessionStore) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.present
}
