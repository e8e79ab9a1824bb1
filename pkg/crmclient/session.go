package crmclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/crm-client/internal/auth"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Session keeps a client's bearer token valid. It logs in with the stored
// credentials when the token is missing or about to expire and sets the new
// token on the client's base client.
type Session struct {
	manager *auth.TokenManager
}

type sessionOptions struct {
	settings *Settings
	path     string
	logger   crm.Logger
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

// WithSessionSettings seeds the session from the access key stored in
// settings and writes every refreshed token back to the file at path.
func WithSessionSettings(settings *Settings, path string) SessionOption {
	return func(o *sessionOptions) {
		o.settings = settings
		o.path = path
	}
}

// WithSessionLogger reports failures to save refreshed tokens.
func WithSessionLogger(logger crm.Logger) SessionOption {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// NewSession creates a session for client.
func NewSession(client crm.Client, credentials *crm.Credentials, opts ...SessionOption) (*Session, error) {
	if client == nil {
		return nil, crm.NewBuildError("client is required")
	}

	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	var authOpts []auth.Option

	if o.logger != nil {
		authOpts = append(authOpts, auth.WithLogger(o.logger))
	}

	if o.settings != nil && o.path != "" {
		authOpts = append(authOpts, auth.WithPersister(&settingsPersister{settings: o.settings, path: o.path}))
	}

	manager := auth.NewTokenManager(client.Auth(), credentials, client.Base(), authOpts...)

	if o.settings != nil && o.settings.AccessKey != "" {
		expiresAt, err := parseExpiry(o.settings.TokenExpiresAt)
		if err != nil {
			return nil, crm.NewRequestError(crm.KindBuild, "invalid token_expires_at", crm.RequestDetails{}, err)
		}

		manager.SetToken(o.settings.AccessKey, expiresAt)
	}

	return &Session{manager: manager}, nil
}

// Token returns a valid access token, logging in if necessary.
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.manager.GetToken(ctx)
}

// Refresh logs in again regardless of the current token.
func (s *Session) Refresh(ctx context.Context) error {
	return s.manager.RefreshToken(ctx)
}

// ExpiresAt returns the expiry of the current token. The zero time means
// there is no token or it does not expire.
func (s *Session) ExpiresAt() time.Time {
	return s.manager.TokenExpiry()
}

// ExpiringWithin reports whether the current token expires within d.
func (s *Session) ExpiringWithin(d time.Duration) bool {
	return s.manager.IsTokenExpiringSoon(d)
}

type settingsPersister struct {
	mutex    sync.Mutex
	settings *Settings
	path     string
}

func (p *settingsPersister) PersistToken(accessToken string, expiresAt time.Time, refreshToken string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.settings.AccessKey = accessToken
	p.settings.RefreshToken = refreshToken
	p.settings.TokenExpiresAt = ""

	if !expiresAt.IsZero() {
		p.settings.TokenExpiresAt = expiresAt.UTC().Format(time.RFC3339)
	}

	err := p.settings.Save(p.path)
	if err != nil {
		return fmt.Errorf("failed to update access key: %w", err)
	}

	return nil
}

func parseExpiry(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	expiresAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", value, err)
	}

	return expiresAt, nil
}
