package client_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/crm-client/internal/client"
	internalhttp "github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/internal/serde"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

const testAPIKey = "test-api-key"

// recordedRequest is what the fake server saw.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
}

// NewTestClient starts a server that records each request and replies with
// status and body, and returns a client pointed at it.
func NewTestClient(t *testing.T, status int, body interface{}) (*client.Client, *[]recordedRequest) {
	t.Helper()

	requests := &[]recordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		*requests = append(*requests, recordedRequest{
			Method:   request.Method,
			Path:     request.URL.Path,
			RawQuery: request.URL.RawQuery,
			Header:   request.Header.Clone(),
			Body:     string(data),
		})

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)

		switch typed := body.(type) {
		case nil:
		case string:
			_, _ = writer.Write([]byte(typed))
		default:
			_ = json.NewEncoder(writer).Encode(typed)
		}
	}))
	t.Cleanup(server.Close)

	return newClientFor(t, server.URL), requests
}

func newClientFor(t *testing.T, baseURL string) *client.Client {
	t.Helper()

	headers := crm.DefaultHeaders()
	headers[crm.HeaderAuthorization] = testAPIKey

	config, err := crm.NewClientConfiguration(baseURL, headers, internalhttp.NewStdlibClient(), serde.NewJSON())
	require.NoError(t, err)

	c, err := client.New(config)
	require.NoError(t, err)

	return c
}

// pageBody renders a page envelope.
func pageBody[T any](items []T, total int) map[string]interface{} {
	return map[string]interface{}{
		"Items":    items,
		"Metadata": map[string]interface{}{"Total": total},
	}
}
