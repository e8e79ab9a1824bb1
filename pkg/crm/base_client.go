package crm

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"sync"
)

// BaseClient sends requests relative to the configured base URL. Resource
// clients embed or wrap it. Transport errors are returned unchanged.
type BaseClient struct {
	config  *ClientConfiguration
	mutex   sync.RWMutex
	headers map[string]string
}

// NewBaseClient creates a base client owning a copy of config's headers.
func NewBaseClient(config *ClientConfiguration) (*BaseClient, error) {
	if config == nil {
		return nil, NewBuildError("client configuration is required")
	}

	return &BaseClient{
		config:  config,
		headers: config.Headers(),
	}, nil
}

// Config returns the configuration the client was built with.
func (c *BaseClient) Config() *ClientConfiguration {
	return c.config
}

// Parser returns the configured parser.
func (c *BaseClient) Parser() Parser {
	return c.config.Parser()
}

// Headers returns a copy of the headers sent with every request.
func (c *BaseClient) Headers() map[string]string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return maps.Clone(c.headers)
}

// SetHeader sets a header for all subsequent requests.
func (c *BaseClient) SetHeader(name, value string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	SetHeader(c.headers, name, value)
}

// RemoveHeader removes a header from all subsequent requests.
func (c *BaseClient) RemoveHeader(name string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	DeleteHeader(c.headers, name)
}

// URL returns the absolute URL for a path suffix.
func (c *BaseClient) URL(pathSuffix string) string {
	return c.config.BaseURL() + pathSuffix
}

// Get sends a GET request.
func (c *BaseClient) Get(ctx context.Context, pathSuffix string, params *Params) (string, error) {
	return c.Do(ctx, http.MethodGet, pathSuffix, params, "", nil)
}

// Put sends a PUT request with payload as the body.
func (c *BaseClient) Put(ctx context.Context, pathSuffix string, params *Params, payload string) (string, error) {
	return c.Do(ctx, http.MethodPut, pathSuffix, params, payload, nil)
}

// Post sends a POST request with payload as the body.
func (c *BaseClient) Post(ctx context.Context, pathSuffix string, params *Params, payload string) (string, error) {
	return c.Do(ctx, http.MethodPost, pathSuffix, params, payload, nil)
}

// Patch sends a PATCH request with payload as the body.
func (c *BaseClient) Patch(ctx context.Context, pathSuffix string, params *Params, payload string) (string, error) {
	return c.Do(ctx, http.MethodPatch, pathSuffix, params, payload, nil)
}

// Delete sends a DELETE request.
func (c *BaseClient) Delete(ctx context.Context, pathSuffix string, params *Params) (string, error) {
	return c.Do(ctx, http.MethodDelete, pathSuffix, params, "", nil)
}

// Do sends a request with an explicit header set. A nil headers map uses the
// client's headers; a non-nil map replaces them for this call only.
func (c *BaseClient) Do(ctx context.Context, method, pathSuffix string, params *Params, payload string, headers map[string]string) (string, error) {
	if headers == nil {
		headers = c.Headers()
	}

	url := c.URL(pathSuffix)
	transport := c.config.Transport()

	switch method {
	case http.MethodGet:
		return transport.Get(ctx, url, params, headers)
	case http.MethodPut:
		return transport.Put(ctx, url, params, payload, headers)
	case http.MethodPost:
		return transport.Post(ctx, url, params, payload, headers)
	case http.MethodPatch:
		return transport.Patch(ctx, url, params, payload, headers)
	case http.MethodDelete:
		return transport.Delete(ctx, url, params, headers)
	default:
		return "", NewInvalidArgumentError(fmt.Sprintf("unsupported method %q", method))
	}
}
