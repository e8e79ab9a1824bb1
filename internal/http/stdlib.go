package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

type stdlibSender struct {
	client *http.Client
}

// NewStdlibClient creates a transport that sends requests with a plain
// *http.Client.
func NewStdlibClient(opts ...Option) *Client {
	o := newOptions(opts)

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		sender: &stdlibSender{client: httpClient},
		opts:   o,
	}
}

func (s *stdlibSender) Send(ctx context.Context, req *OutgoingRequest) (*RawResponse, error) {
	var body io.Reader
	if req.HasBody {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	setHeaders(httpReq.Header, req.Headers)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	return readResponse(resp)
}

func setHeaders(target http.Header, headers map[string]string) {
	for name, value := range headers {
		target.Set(name, value)
	}
}

func readResponse(resp *http.Response) (*RawResponse, error) {
	if resp == nil {
		return nil, nil //nolint:nilnil // a missing response is classified by the caller
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
