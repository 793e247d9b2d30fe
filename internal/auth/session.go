package auth

import (
	"sync"

	"github.com/yourorg/garagetrack/internal/domain"
)

// Identity is the authenticated principal threaded into every tenant-scoped
// call.
type Identity struct {
	TenantID int64
	UserID   int64
	Role     domain.Role
	Email    string
}

// Session holds at most one authenticated identity per running instance.
// It is owned by the caller and passed explicitly, not process-global.
// Absent at startup, populated by a successful login, cleared by logout.
type Session struct {
	mu       sync.RWMutex
	identity *Identity
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Set populates the session after a successful login.
func (s *Session) Set(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
}

// Clear empties the session on logout.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
}

// Current returns the identity and whether one is set.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// IsLoggedIn reports whether an identity is set.
func (s *Session) IsLoggedIn() bool {
	_, ok := s.Current()
	return ok
}

// TenantID returns the tenant of the current identity. A missing session is
// a precondition failure, never a silent default.
func (s *Session) TenantID() (int64, error) {
	id, ok := s.Current()
	if !ok {
		return 0, domain.E(domain.ErrAuth, "Oturum bulunamadı. Lütfen tekrar giriş yapın.")
	}
	return id.TenantID, nil
}
