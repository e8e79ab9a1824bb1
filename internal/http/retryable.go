package http

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
)

type retryableSender struct {
	client *retryablehttp.Client
}

// NewRetryableClient creates a transport backed by go-retryablehttp. Retries
// stay off unless WithRetryConfig asks for them; the final response is
// always passed through for status classification.
func NewRetryableClient(opts ...Option) *Client {
	o := newOptions(opts)

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = o.retryMax
	retryClient.RetryWaitMin = o.retryWaitMin
	retryClient.RetryWaitMax = o.retryWaitMax
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if o.httpClient != nil {
		retryClient.HTTPClient = o.httpClient
	} else {
		retryClient.HTTPClient.Timeout = o.timeout
	}

	return &Client{
		sender: &retryableSender{client: retryClient},
		opts:   o,
	}
}

func (s *retryableSender) Send(ctx context.Context, req *OutgoingRequest) (*RawResponse, error) {
	var rawBody interface{}
	if req.HasBody {
		rawBody = req.Body
	}

	retryReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	setHeaders(retryReq.Header, req.Headers)

	resp, err := s.client.Do(retryReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, fmt.Errorf("sending request: %w", err)
	}

	return readResponse(resp)
}
