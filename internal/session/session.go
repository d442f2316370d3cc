// Package session holds the process-local bearer token index. Tokens are
// opaque strings resolved by exact lookup; reissuing for a user drops the
// user's previous token.
package session

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store maps issued bearer tokens to user ids.
type Store struct {
	mu      sync.Mutex
	byToken map[string]string
	byUser  map[string]string
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		byToken: make(map[string]string),
		byUser:  make(map[string]string),
	}
}

// Issue creates a fresh token for the user, invalidating any prior token
// held by the same user.
func (s *Store) Issue(userID string) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byUser[userID]; ok {
		delete(s.byToken, prev)
	}
	s.byToken[token] = userID
	s.byUser[userID] = token
	return token
}

// Resolve returns the user id for a token, or false when the token is not live.
func (s *Store) Resolve(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.byToken[token]
	return userID, ok
}

// Len reports the number of live tokens.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byToken)
}
