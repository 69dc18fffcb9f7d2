// Package session tracks the logged in user of a client application and
// decides which views that user may open.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/itsatony/smartrooms/client"
	nuts "github.com/vaudience/go-nuts"
)

// Authenticator checks credentials; *client.Client satisfies it
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*client.User, error)
}

// Session holds the current user. It is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	store Store
	auth  Authenticator
	user  *client.User
}

// New creates a session and restores any user saved in store
func New(store Store, auth Authenticator) *Session {
	s := &Session{store: store, auth: auth}
	s.restore()
	return s
}

// restore loads the stored user. Unreadable data or an unknown role is discarded.
func (s *Session) restore() {
	user, err := s.store.Load()
	if errors.Is(err, ErrNoSession) {
		return
	}
	if err == nil && !Role(user.UserType).Valid() {
		err = errors.New("unknown user_type " + user.UserType)
	}
	if err != nil {
		nuts.L.Warnf("[Session] Discarding stored session: %v", err)
		if cerr := s.store.Clear(); cerr != nil {
			nuts.L.Warnf("[Session] Failed to clear stored session: %v", cerr)
		}
		return
	}
	s.user = user
}

// Login authenticates and stores the user. On failure the current session is left unchanged.
func (s *Session) Login(ctx context.Context, username, password string) (*client.User, error) {
	user, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(user); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// Logout forgets the user and returns the path to send them to
func (s *Session) Logout() (string, error) {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return PathLogin, s.store.Clear()
}

// User returns a copy of the current user, or nil
func (s *Session) User() *client.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Role is empty when nobody is logged in
func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return Role(s.user.UserType)
}

func (s *Session) CheckRole(r Role) bool {
	return s.IsAuthenticated() && s.Role() == r
}

func (s *Session) HasPermission(p Permission) bool {
	return s.IsAuthenticated() && s.Role().Has(p)
}
