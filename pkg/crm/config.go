package crm

import (
	"maps"
	"strings"
)

// Standard header names and values.
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	ContentTypeJSON     = "application/json"
	ContentTypeForm     = "application/x-www-form-urlencoded"
	BearerPrefix        = "Bearer "
)

// DefaultHeaders returns the headers every configuration starts with.
func DefaultHeaders() map[string]string {
	return map[string]string{
		HeaderContentType: ContentTypeJSON,
		HeaderAccept:      ContentTypeJSON,
	}
}

// HasValidHeaders reports whether headers carry a non-empty Authorization
// entry. Header names are matched case-insensitively.
func HasValidHeaders(headers map[string]string) bool {
	value, ok := LookupHeader(headers, HeaderAuthorization)

	return ok && strings.TrimSpace(value) != ""
}

// LookupHeader finds a header by case-insensitive name.
func LookupHeader(headers map[string]string, name string) (string, bool) {
	if value, ok := headers[name]; ok {
		return value, true
	}

	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}

	return "", false
}

// SetHeader stores value under name, dropping any entry whose name differs
// only in case.
func SetHeader(headers map[string]string, name, value string) {
	DeleteHeader(headers, name)
	headers[name] = value
}

// DeleteHeader removes every entry matching name case-insensitively.
func DeleteHeader(headers map[string]string, name string) {
	for key := range headers {
		if strings.EqualFold(key, name) {
			delete(headers, key)
		}
	}
}

// ClientConfiguration is the validated, immutable configuration shared by a
// client's resource clients.
type ClientConfiguration struct {
	baseURL   string
	headers   map[string]string
	transport Transport
	parser    Parser
}

// NewClientConfiguration validates every field and returns a configuration
// holding its own copy of headers.
func NewClientConfiguration(baseURL string, headers map[string]string, transport Transport, parser Parser) (*ClientConfiguration, error) {
	if transport == nil {
		return nil, NewBuildError("transport is required")
	}

	if strings.TrimSpace(baseURL) == "" {
		return nil, NewBuildError("base URL is required")
	}

	if parser == nil {
		return nil, NewBuildError("parser is required")
	}

	if !HasValidHeaders(headers) {
		return nil, NewBuildError("Authorization header is required")
	}

	return &ClientConfiguration{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		headers:   maps.Clone(headers),
		transport: transport,
		parser:    parser,
	}, nil
}

// BaseURL returns the API root every path suffix is appended to.
func (c *ClientConfiguration) BaseURL() string {
	return c.baseURL
}

// Headers returns a copy of the configured headers.
func (c *ClientConfiguration) Headers() map[string]string {
	return maps.Clone(c.headers)
}

// Header returns a single configured header.
func (c *ClientConfiguration) Header(name string) (string, bool) {
	return LookupHeader(c.headers, name)
}

// Transport returns the configured transport.
func (c *ClientConfiguration) Transport() Transport {
	return c.transport
}

// Parser returns the configured parser.
func (c *ClientConfiguration) Parser() Parser {
	return c.parser
}
