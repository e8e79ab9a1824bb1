package http

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

type restySender struct {
	client *resty.Client
}

// NewRestyClient creates a transport backed by resty.
func NewRestyClient(opts ...Option) *Client {
	o := newOptions(opts)

	var restyClient *resty.Client
	if o.httpClient != nil {
		restyClient = resty.NewWithClient(o.httpClient)
	} else {
		restyClient = resty.New().SetTimeout(o.timeout)
	}

	restyClient.
		SetRetryCount(o.retryMax).
		SetRetryWaitTime(o.retryWaitMin).
		SetRetryMaxWaitTime(o.retryWaitMax)

	return &Client{
		sender: &restySender{client: restyClient},
		opts:   o,
	}
}

func (s *restySender) Send(ctx context.Context, req *OutgoingRequest) (*RawResponse, error) {
	restyReq := s.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers)

	if req.HasBody {
		restyReq.SetBody(req.Body)
	}

	resp, err := restyReq.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if resp == nil || resp.RawResponse == nil {
		return nil, nil //nolint:nilnil // a missing response is classified by the caller
	}

	return &RawResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
