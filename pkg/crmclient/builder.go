package crmclient

import (
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	internalhttp "github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Builder assembles a crm.ClientConfiguration. Setters that validate their
// input return an error and leave the builder unchanged when it is rejected.
// Build may be called repeatedly; a failed Build changes nothing.
type Builder struct {
	baseURL          string
	headers          map[string]string
	requestMaker     string
	transport        crm.Transport
	parser           crm.Parser
	transportOptions []TransportOption
}

// NewBuilder creates a builder holding the default headers and no transport,
// parser, base URL or credentials.
func NewBuilder() *Builder {
	return &Builder{
		headers: crm.DefaultHeaders(),
	}
}

// WithBaseURL sets the API root every path suffix is appended to.
func (b *Builder) WithBaseURL(baseURL string) (*Builder, error) {
	if strings.TrimSpace(baseURL) == "" {
		return b, crm.NewBuildError("base URL must not be blank")
	}

	err := internalhttp.ValidateURL(baseURL)
	if err != nil {
		return b, crm.NewRequestError(crm.KindBuild, "invalid base URL", crm.RequestDetails{URL: baseURL}, err)
	}

	b.baseURL = baseURL

	return b, nil
}

// WithAPIKey sends key verbatim as the Authorization header.
func (b *Builder) WithAPIKey(key string) (*Builder, error) {
	if strings.TrimSpace(key) == "" {
		return b, crm.NewBuildError("API key must not be blank")
	}

	crm.SetHeader(b.headers, crm.HeaderAuthorization, key)

	return b, nil
}

// WithAccessKey sends key as a bearer token in the Authorization header.
func (b *Builder) WithAccessKey(key string) (*Builder, error) {
	if strings.TrimSpace(key) == "" {
		return b, crm.NewBuildError("access key must not be blank")
	}

	crm.SetHeader(b.headers, crm.HeaderAuthorization, crm.BearerPrefix+key)

	return b, nil
}

// WithHeaders merges headers into the builder's headers. Later values win.
func (b *Builder) WithHeaders(headers map[string]string) (*Builder, error) {
	for name := range headers {
		if strings.TrimSpace(name) == "" {
			return b, crm.NewBuildError("header name must not be blank")
		}
	}

	for name, value := range headers {
		crm.SetHeader(b.headers, name, value)
	}

	return b, nil
}

// WithRequestMaker selects a registered transport implementation by name.
// An unknown name is an InvalidRequestMaker error.
func (b *Builder) WithRequestMaker(name string) (*Builder, error) {
	_, err := lookupRequestMaker(name)
	if err != nil {
		return b, err
	}

	b.requestMaker = normalizeName(name)
	b.transport = nil

	return b, nil
}

// WithDefaultRequestMaker selects the default transport implementation.
func (b *Builder) WithDefaultRequestMaker() *Builder {
	b.requestMaker = DefaultRequestMaker
	b.transport = nil

	return b
}

// WithTransport uses transport as is. Transport options set on the builder
// do not apply to it.
func (b *Builder) WithTransport(transport crm.Transport) (*Builder, error) {
	if transport == nil {
		return b, crm.NewBuildError("transport must not be nil")
	}

	b.transport = transport
	b.requestMaker = ""

	return b, nil
}

// WithParser selects a registered parser by name.
func (b *Builder) WithParser(name string) (*Builder, error) {
	factory, err := lookupParser(name)
	if err != nil {
		return b, err
	}

	b.parser = factory()

	return b, nil
}

// WithDefaultParser selects the default parser.
func (b *Builder) WithDefaultParser() *Builder {
	factory, _ := lookupParser(DefaultParser)
	b.parser = factory()

	return b
}

// WithCustomParser uses parser as is.
func (b *Builder) WithCustomParser(parser crm.Parser) (*Builder, error) {
	if parser == nil {
		return b, crm.NewBuildError("parser must not be nil")
	}

	b.parser = parser

	return b, nil
}

// WithTransportOptions appends options passed to the request maker.
func (b *Builder) WithTransportOptions(opts ...TransportOption) *Builder {
	b.transportOptions = append(b.transportOptions, opts...)

	return b
}

// WithLogger sets the logger used by the transport.
func (b *Builder) WithLogger(logger crm.Logger) *Builder {
	return b.WithTransportOptions(internalhttp.WithLogger(logger))
}

// WithDebug logs every request and response at debug level.
func (b *Builder) WithDebug(debug bool) *Builder {
	return b.WithTransportOptions(internalhttp.WithDebug(debug))
}

// WithUserAgent sets the User-Agent sent when a request carries none.
func (b *Builder) WithUserAgent(userAgent string) *Builder {
	return b.WithTransportOptions(internalhttp.WithUserAgent(userAgent))
}

// WithTimeout sets the per-request timeout.
func (b *Builder) WithTimeout(timeout time.Duration) (*Builder, error) {
	if timeout <= 0 {
		return b, crm.NewBuildError("timeout must be positive")
	}

	return b.WithTransportOptions(internalhttp.WithTimeout(timeout)), nil
}

// WithRetryConfig enables retries in request makers that support them.
func (b *Builder) WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) (*Builder, error) {
	if maxRetries < 0 || waitMin < 0 || waitMax < waitMin {
		return b, crm.NewBuildError("invalid retry configuration")
	}

	return b.WithTransportOptions(internalhttp.WithRetryConfig(maxRetries, waitMin, waitMax)), nil
}

// WithRateLimit caps the request rate at requestsPerSecond with the given
// burst.
func (b *Builder) WithRateLimit(requestsPerSecond float64, burst int) (*Builder, error) {
	if requestsPerSecond <= 0 || burst <= 0 {
		return b, crm.NewBuildError("rate limit and burst must be positive")
	}

	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return b.WithTransportOptions(internalhttp.WithRateLimiter(limiter)), nil
}

// WithRequestID adds an X-Request-Id header to every request that lacks one.
func (b *Builder) WithRequestID(enabled bool) *Builder {
	return b.WithTransportOptions(internalhttp.WithRequestID(enabled))
}

// WithHTTPClient makes net/http based request makers send through client.
func (b *Builder) WithHTTPClient(client *http.Client) (*Builder, error) {
	if client == nil {
		return b, crm.NewBuildError("http client must not be nil")
	}

	return b.WithTransportOptions(internalhttp.WithHTTPClient(client)), nil
}

// WithMetrics registers request metrics with registerer and records every
// request sent by the built transport.
func (b *Builder) WithMetrics(registerer prometheus.Registerer) (*Builder, error) {
	if registerer == nil {
		return b, crm.NewBuildError("metrics registerer must not be nil")
	}

	metrics, err := internalhttp.NewMetrics(registerer)
	if err != nil {
		return b, crm.NewRequestError(crm.KindBuild, "registering metrics", crm.RequestDetails{}, err)
	}

	return b.WithTransportOptions(internalhttp.WithMetrics(metrics)), nil
}

// Headers returns a copy of the headers collected so far.
func (b *Builder) Headers() map[string]string {
	return maps.Clone(b.headers)
}

// Build validates the collected values and returns an immutable
// configuration. It fails with a Build error when the transport, base URL,
// parser or Authorization header is missing.
func (b *Builder) Build() (*crm.ClientConfiguration, error) {
	transport, err := b.resolveTransport()
	if err != nil {
		return nil, err
	}

	return crm.NewClientConfiguration(b.baseURL, b.headers, transport, b.parser)
}

func (b *Builder) resolveTransport() (crm.Transport, error) {
	if b.transport != nil {
		return b.transport, nil
	}

	if b.requestMaker == "" {
		return nil, nil //nolint:nilnil // reported by NewClientConfiguration
	}

	maker, err := lookupRequestMaker(b.requestMaker)
	if err != nil {
		return nil, err
	}

	return maker(b.transportOptions...), nil
}
