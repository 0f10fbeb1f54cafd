// ABOUTME: Session credentials attached to every authenticated webhook call
// ABOUTME: Single slot, set at login, cleared at logout; user_id is the login email
package session

import "sync"

// Session is the credential triple the backend expects on every
// authenticated action.
type Session struct {
	CompanyID string `json:"company_id"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
}

// Store is a single-slot session holder. Last Set wins.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set installs credentials for subsequent requests.
func (s *Store) Set(companyID, token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{CompanyID: companyID, Token: token, UserID: userID}
}

// Get returns the current session, or nil when logged out.
func (s *Store) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// Clear removes the credentials.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
