// Package auth keeps a client's bearer token valid by logging in again when
// the current token is about to expire.
package auth

import (
	"sync"
	"time"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Token is a login result together with its absolute expiry.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	ExpiresAt    time.Time
}

// NewToken converts a login response issued at now.
func NewToken(token *crm.Token, now time.Time) *Token {
	if token == nil {
		return nil
	}

	result := &Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
	}

	if token.ExpiresIn > 0 {
		result.ExpiresAt = now.Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return result
}

// Valid reports whether the token can still be used. A zero expiry never
// expires; otherwise the token must outlive the expiry buffer.
func (t *Token) Valid() bool {
	return t.validAt(time.Now())
}

func (t *Token) validAt(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return now.Add(constants.TokenExpiryBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token for concurrent readers.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.Set(nil)
}
