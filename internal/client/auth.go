package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// AuthClient implements crm.AuthClient.
type AuthClient struct {
	base *crm.BaseClient
}

// NewAuthClient creates a new auth client.
func NewAuthClient(base *crm.BaseClient) *AuthClient {
	return &AuthClient{base: base}
}

// Login exchanges credentials for a token with the password grant. The
// request is form-encoded and sent without the configured Authorization
// header.
func (c *AuthClient) Login(ctx context.Context, credentials *crm.Credentials) (*crm.Token, error) {
	if credentials == nil {
		return nil, crm.NewInvalidArgumentError("credentials are required")
	}

	if strings.TrimSpace(credentials.Username) == "" {
		return nil, crm.NewInvalidArgumentError("username is required")
	}

	if credentials.Password == "" {
		return nil, crm.NewInvalidArgumentError("password is required")
	}

	form := crm.ParamsFromPairs(
		constants.FormGrantType, constants.GrantTypePassword,
		constants.FormUsername, credentials.Username,
		constants.FormPassword, credentials.Password,
	)
	if credentials.Scope != "" {
		form.Set(constants.FormScope, credentials.Scope)
	}

	payload, err := internalhttp.EncodeForm(form)
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}

	headers := c.base.Headers()
	crm.DeleteHeader(headers, crm.HeaderAuthorization)
	crm.SetHeader(headers, crm.HeaderContentType, crm.ContentTypeForm)

	resp, err := c.base.Do(ctx, http.MethodPost, constants.PathAuthToken, nil, payload, headers)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var token crm.Token

	err = c.base.Parser().JSONStringToObject(resp, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, crm.NewParseError("token response has no access_token", nil)
	}

	return &token, nil
}
