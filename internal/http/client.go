// Package http implements crm.Transport on top of pluggable request makers.
package http

import (
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// OutgoingRequest is a fully assembled request handed to a Sender.
type OutgoingRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	HasBody bool
}

// RawResponse is what a Sender got back from the server.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Sender is the mechanism that puts a request on the wire. A nil response
// with a nil error means the mechanism produced nothing and is reported as
// an Unknown error.
type Sender interface {
	Send(ctx context.Context, req *OutgoingRequest) (*RawResponse, error)
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, req *OutgoingRequest) (*RawResponse, error)

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, req *OutgoingRequest) (*RawResponse, error) {
	return f(ctx, req)
}

type options struct {
	logger       crm.Logger
	debug        bool
	userAgent    string
	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	limiter      *rate.Limiter
	metrics      *Metrics
	requestID    bool
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger crm.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithUserAgent sets the User-Agent sent when the caller supplies none.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout of the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithRetryConfig enables retries in request makers that support them.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(o *options) {
		o.retryMax = maxRetries
		o.retryWaitMin = waitMin
		o.retryWaitMax = waitMax
	}
}

// WithRateLimiter makes every request wait for limiter first.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = limiter
	}
}

// WithMetrics records request counts and latency.
func WithMetrics(metrics *Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithRequestID adds an X-Request-Id header to requests that lack one.
func WithRequestID(enabled bool) Option {
	return func(o *options) {
		o.requestID = enabled
	}
}

// WithHTTPClient sets the *http.Client used by request makers built on
// net/http.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout:      constants.DefaultHTTPTimeout,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Client implements crm.Transport.
type Client struct {
	sender Sender
	opts   options
}

// NewClient creates a transport around an arbitrary Sender.
func NewClient(sender Sender, opts ...Option) *Client {
	return &Client{
		sender: sender,
		opts:   newOptions(opts),
	}
}

// Get implements crm.Transport.
func (c *Client) Get(ctx context.Context, url string, params *crm.Params, headers map[string]string) (string, error) {
	return c.do(ctx, http.MethodGet, url, params, "", false, headers)
}

// Put implements crm.Transport.
func (c *Client) Put(ctx context.Context, url string, params *crm.Params, payload string, headers map[string]string) (string, error) {
	return c.do(ctx, http.MethodPut, url, params, payload, true, headers)
}

// Post implements crm.Transport.
func (c *Client) Post(ctx context.Context, url string, params *crm.Params, payload string, headers map[string]string) (string, error) {
	return c.do(ctx, http.MethodPost, url, params, payload, true, headers)
}

// Patch implements crm.Transport.
func (c *Client) Patch(ctx context.Context, url string, params *crm.Params, payload string, headers map[string]string) (string, error) {
	return c.do(ctx, http.MethodPatch, url, params, payload, true, headers)
}

// Delete implements crm.Transport.
func (c *Client) Delete(ctx context.Context, url string, params *crm.Params, headers map[string]string) (string, error) {
	return c.do(ctx, http.MethodDelete, url, params, "", false, headers)
}

func (c *Client) do(ctx context.Context, method, url string, params *crm.Params, payload string, hasBody bool, headers map[string]string) (string, error) {
	details := crm.RequestDetails{
		URL:        url,
		Payload:    payload,
		Parameters: params,
		Headers:    headers,
	}

	fullURL, err := buildURL(details)
	if err != nil {
		return "", err
	}

	details.URL = fullURL

	req := &OutgoingRequest{
		Method:  method,
		URL:     fullURL,
		Headers: c.requestHeaders(headers),
		HasBody: hasBody,
	}

	if hasBody {
		req.Body = []byte(payload)
	}

	start := time.Now()
	body, err := c.send(ctx, req, details)

	if c.opts.metrics != nil {
		c.opts.metrics.Observe(method, time.Since(start), err)
	}

	return body, err
}

func (c *Client) send(ctx context.Context, req *OutgoingRequest, details crm.RequestDetails) (string, error) {
	if c.opts.limiter != nil {
		err := c.opts.limiter.Wait(ctx)
		if err != nil {
			return "", crm.NewRequestError(crm.KindBadRequest, "waiting for rate limiter", details, err)
		}
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL,
	})

	start := time.Now()

	resp, err := c.sender.Send(ctx, req)
	if err != nil {
		c.logError("HTTP Request Failed", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
			"error":  err.Error(),
		})

		return "", crm.NewRequestError(crm.KindBadRequest, "transport failure", details, err)
	}

	if resp == nil {
		return "", crm.NewRequestError(crm.KindUnknown, "no response received", details, nil)
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"url":         req.URL,
		"status_code": resp.StatusCode,
		"duration":    time.Since(start).String(),
	})

	if resp.StatusCode < constants.HTTPStatusSuccessMin || resp.StatusCode >= constants.HTTPStatusSuccessMax {
		return "", crm.NewResponseCodeError(resp.StatusCode, string(resp.Body), details)
	}

	return string(resp.Body), nil
}

func (c *Client) requestHeaders(headers map[string]string) map[string]string {
	result := maps.Clone(headers)
	if result == nil {
		result = make(map[string]string)
	}

	if c.opts.userAgent != "" {
		if _, ok := crm.LookupHeader(result, constants.HeaderUserAgent); !ok {
			result[constants.HeaderUserAgent] = c.opts.userAgent
		}
	}

	if c.opts.requestID {
		if _, ok := crm.LookupHeader(result, constants.HeaderRequestID); !ok {
			result[constants.HeaderRequestID] = uuid.NewString()
		}
	}

	return result
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.opts.debug && c.opts.logger != nil {
		c.opts.logger.Debug(msg, fields)
	}
}

func (c *Client) logError(msg string, fields map[string]interface{}) {
	if c.opts.logger != nil {
		c.opts.logger.Error(msg, fields)
	}
}
