package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Static errors for err113 compliance.
var (
	ErrNoCredentials = errors.New("no credentials configured")
)

// TokenPersister saves refreshed tokens, for example into a settings file.
type TokenPersister interface {
	PersistToken(accessToken string, expiresAt time.Time, refreshToken string) error
}

// HeaderSetter receives the Authorization header of a fresh token.
// *crm.BaseClient implements it.
type HeaderSetter interface {
	SetHeader(name, value string)
}

// Option configures a TokenManager.
type Option func(*TokenManager)

// WithPersister saves every token obtained by a login.
func WithPersister(persister TokenPersister) Option {
	return func(m *TokenManager) {
		m.persister = persister
	}
}

// WithLogger reports persistence failures.
func WithLogger(logger crm.Logger) Option {
	return func(m *TokenManager) {
		m.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) {
		m.now = now
	}
}

// TokenManager logs in with stored credentials whenever the current token is
// missing or about to expire, and applies the new token to a HeaderSetter.
type TokenManager struct {
	authClient  crm.AuthClient
	credentials *crm.Credentials
	target      HeaderSetter
	persister   TokenPersister
	logger      crm.Logger
	now         func() time.Time
	store       *TokenStore
	mutex       sync.Mutex
}

// NewTokenManager creates a token manager. credentials may be nil when tokens
// are only ever supplied through SetToken.
func NewTokenManager(authClient crm.AuthClient, credentials *crm.Credentials, target HeaderSetter, opts ...Option) *TokenManager {
	manager := &TokenManager{
		authClient:  authClient,
		credentials: credentials,
		target:      target,
		now:         time.Now,
		store:       NewTokenStore(),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// GetToken returns a valid access token, logging in if necessary.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.validAt(m.now()) {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Another caller may have logged in while we waited.
	token = m.store.Get()
	if token.validAt(m.now()) {
		return token.AccessToken, nil
	}

	token, err := m.login(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a new login.
func (m *TokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, err := m.login(ctx)

	return err
}

// SetToken installs a token obtained elsewhere.
func (m *TokenManager) SetToken(accessToken string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.apply(&Token{AccessToken: accessToken, ExpiresAt: expiresAt})
}

// IsTokenExpiringSoon reports whether the token expires within the given
// duration. A missing token is always expiring.
func (m *TokenManager) IsTokenExpiringSoon(within time.Duration) bool {
	token := m.store.Get()
	if token == nil {
		return true
	}

	if token.ExpiresAt.IsZero() {
		return false
	}

	return m.now().Add(within).After(token.ExpiresAt)
}

// TokenExpiry returns the current token's expiry, or the zero time.
func (m *TokenManager) TokenExpiry() time.Time {
	token := m.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *TokenManager) login(ctx context.Context) (*Token, error) {
	if m.credentials == nil {
		return nil, ErrNoCredentials
	}

	response, err := m.authClient.Login(ctx, m.credentials)
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}

	token := NewToken(response, m.now())
	m.apply(token)

	if m.persister != nil {
		persistErr := m.persister.PersistToken(token.AccessToken, token.ExpiresAt, token.RefreshToken)
		if persistErr != nil && m.logger != nil {
			m.logger.Warn("failed to persist refreshed token", map[string]interface{}{
				"error": persistErr.Error(),
			})
		}
	}

	return token, nil
}

func (m *TokenManager) apply(token *Token) {
	m.store.Set(token)

	if m.target != nil {
		m.target.SetHeader(crm.HeaderAuthorization, crm.BearerPrefix+token.AccessToken)
	}
}
