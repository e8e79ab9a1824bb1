package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	crmhttp "github.com/fivetwenty-io/crm-client/internal/http"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Test static errors.
var (
	ErrTestConnectionReset = errors.New("connection reset by peer")
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func (l *MockLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]string, 0, len(l.logs))
	for _, entry := range l.logs {
		result = append(result, entry["msg"].(string)) //nolint:forcetypeassert // test helper
	}

	return result
}

type makerFunc func(opts ...crmhttp.Option) *crmhttp.Client

func makers() map[string]makerFunc {
	return map[string]makerFunc{
		"retryablehttp": crmhttp.NewRetryableClient,
		"resty":         crmhttp.NewRestyClient,
		"stdlib":        crmhttp.NewStdlibClient,
	}
}

type captured struct {
	method  string
	rawURL  string
	headers http.Header
	body    string
}

func newCaptureServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()

	got := &captured{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		got.method = r.Method
		got.rawURL = r.URL.RequestURI()
		got.headers = r.Header.Clone()
		got.body = string(data)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, got
}

func TestClient_SuccessBody(t *testing.T) {
	t.Parallel()

	for name, newClient := range makers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server, got := newCaptureServer(t, http.StatusOK, "Success")

			body, err := newClient().Get(context.Background(), server.URL+"/crm/people", nil, nil)
			require.NoError(t, err)
			assert.Equal(t, "Success", body)
			assert.Equal(t, http.MethodGet, got.method)
			assert.Equal(t, "/crm/people", got.rawURL)
		})
	}
}

func TestClient_EmptySuccessBody(t *testing.T) {
	t.Parallel()

	for name, newClient := range makers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server, _ := newCaptureServer(t, http.StatusNoContent, "")

			body, err := newClient().Delete(context.Background(), server.URL+"/crm/people/1", nil, nil)
			require.NoError(t, err)
			assert.Empty(t, body)
		})
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	t.Parallel()

	for name, newClient := range makers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server, _ := newCaptureServer(t, http.StatusBadRequest, `{"error":"bad"}`)

			params := crm.ParamsFromPairs("page", "1")
			headers := map[string]string{"Authorization": "key"}

			_, err := newClient().Post(context.Background(), server.URL+"/crm/people", params, `{"Uid":"1"}`, headers)
			require.Error(t, err)
			assert.True(t, crm.IsInvalidResponseCode(err))
			assert.Equal(t, http.StatusBadRequest, crm.StatusCode(err))

			var reqErr *crm.RequestError

			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, server.URL+"/crm/people?page=1", reqErr.URL)
			assert.JSONEq(t, `{"Uid":"1"}`, reqErr.Payload)
			assert.Equal(t, "key", reqErr.Headers["Authorization"])
			assert.Equal(t, `{"error":"bad"}`, reqErr.Body)

			value, ok := reqErr.Parameters.Get("page")
			assert.True(t, ok)
			assert.Equal(t, "1", value)
		})
	}
}

func TestClient_IOFault(t *testing.T) {
	t.Parallel()

	for name, newClient := range makers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			closedURL := server.URL
			server.Close()

			_, err := newClient().Get(context.Background(), closedURL+"/crm/people", nil, nil)
			require.Error(t, err)
			assert.True(t, crm.IsBadRequest(err))

			var reqErr *crm.RequestError

			require.ErrorAs(t, err, &reqErr)
			assert.Error(t, reqErr.Cause)
		})
	}
}

func TestClient_CanceledContext(t *testing.T) {
	t.Parallel()

	for name, newClient := range makers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server, _ := newCaptureServer(t, http.StatusOK, "Success")

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := newClient().Get(ctx, server.URL, nil, nil)
			require.Error(t, err)
			assert.True(t, crm.IsBadRequest(err))
		})
	}
}

func TestClient_InvalidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "blank", url: "   "},
		{name: "relative", url: "/crm/people"},
		{name: "no scheme", url: "api.example.com/crm"},
		{name: "malformed", url: "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
				called = true

				return &crmhttp.RawResponse{StatusCode: http.StatusOK}, nil
			}))

			_, err := client.Get(context.Background(), tt.url, nil, nil)
			require.Error(t, err)
			assert.True(t, crm.IsInvalidURL(err))
			assert.False(t, called)
		})
	}
}

func TestClient_StatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		wantKind crm.ErrorKind
		wantOK   bool
	}{
		{name: "199 informational", status: 199, wantKind: crm.KindInvalidResponseCode},
		{name: "200 ok", status: 200, wantOK: true},
		{name: "299 upper bound", status: 299, wantOK: true},
		{name: "300 redirect", status: 300, wantKind: crm.KindInvalidResponseCode},
		{name: "500 server error", status: 500, wantKind: crm.KindInvalidResponseCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
				return &crmhttp.RawResponse{StatusCode: tt.status, Body: []byte("body")}, nil
			}))

			body, err := client.Get(context.Background(), "https://api.example.com/crm", nil, nil)
			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, "body", body)

				return
			}

			require.Error(t, err)

			kind, ok := crm.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.status, crm.StatusCode(err))
		})
	}
}

func TestClient_NilResponse(t *testing.T) {
	t.Parallel()

	client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
		return nil, nil
	}))

	_, err := client.Get(context.Background(), "https://api.example.com/crm", nil, nil)
	require.Error(t, err)
	assert.True(t, crm.IsUnknown(err))
}

func TestClient_SenderErrorKeepsCause(t *testing.T) {
	t.Parallel()

	client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
		return nil, ErrTestConnectionReset
	}))

	_, err := client.Put(context.Background(), "https://api.example.com/crm", nil, "{}", nil)
	require.Error(t, err)
	assert.True(t, crm.IsBadRequest(err))
	assert.ErrorIs(t, err, ErrTestConnectionReset)
}

func TestClient_QueryAssembly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params *crm.Params
		want   string
	}{
		{name: "nil params", params: nil, want: "/crm/people"},
		{name: "empty params", params: crm.NewParams(), want: "/crm/people"},
		{name: "insertion order", params: crm.ParamsFromPairs("a", "1", "b", "2"), want: "/crm/people?a=1&b=2"},
		{name: "reverse order kept", params: crm.ParamsFromPairs("b", "2", "a", "1"), want: "/crm/people?b=2&a=1"},
		{name: "encoded values", params: crm.ParamsFromPairs("q", "a b&c"), want: "/crm/people?q=a+b%26c"},
		{name: "non-string values", params: crm.ParamsFromPairs("page", 3, "active", true), want: "/crm/people?page=3&active=true"},
		{name: "typed filter", params: crm.ParamsFromPairs("accountStage", crm.AccountStage("Customer")), want: "/crm/people?accountStage=Customer"},
		{name: "string slice", params: crm.ParamsFromPairs("tags", []string{"a", "b"}), want: "/crm/people?tags=a%2Cb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotURL string

			client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
				gotURL = req.URL

				return &crmhttp.RawResponse{StatusCode: http.StatusOK}, nil
			}))

			_, err := client.Get(context.Background(), "https://api.example.com/crm/people", tt.params, nil)
			require.NoError(t, err)
			assert.Equal(t, "https://api.example.com"+tt.want, gotURL)
		})
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	got, err := crmhttp.BuildURL("https://api.example.com/crm?x=0", crm.ParamsFromPairs("a", "1"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/crm?x=0&a=1", got)

	_, err = crmhttp.BuildURL("https://api.example.com/crm", crm.ParamsFromPairs("bad", make(chan int)))
	require.Error(t, err)
	assert.True(t, crm.IsInvalidURL(err))
}

func TestClient_HeadersAndBody(t *testing.T) {
	t.Parallel()

	for name, newClient := range makers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server, got := newCaptureServer(t, http.StatusOK, "{}")

			headers := map[string]string{
				"Authorization": "Bearer abc",
				"X-Custom":      "Value With Spaces",
			}

			_, err := newClient().Patch(context.Background(), server.URL+"/crm/people/1", crm.ParamsFromPairs("a", "1", "b", "2"), `{"FirstName":"Ada"}`, headers)
			require.NoError(t, err)
			assert.Equal(t, http.MethodPatch, got.method)
			assert.Equal(t, "/crm/people/1?a=1&b=2", got.rawURL)
			assert.Equal(t, "Bearer abc", got.headers.Get("Authorization"))
			assert.Equal(t, "Value With Spaces", got.headers.Get("X-Custom"))
			assert.JSONEq(t, `{"FirstName":"Ada"}`, got.body)
		})
	}
}

func TestClient_EmptyPayloadSent(t *testing.T) {
	t.Parallel()

	var sent *crmhttp.OutgoingRequest

	client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
		sent = req

		return &crmhttp.RawResponse{StatusCode: http.StatusOK}, nil
	}))

	_, err := client.Post(context.Background(), "https://api.example.com/crm", nil, "", nil)
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.True(t, sent.HasBody)
	assert.NotNil(t, sent.Body)
	assert.Empty(t, sent.Body)

	_, err = client.Get(context.Background(), "https://api.example.com/crm", nil, nil)
	require.NoError(t, err)
	assert.False(t, sent.HasBody)
}

func TestClient_UserAgentAndRequestID(t *testing.T) {
	t.Parallel()

	server, got := newCaptureServer(t, http.StatusOK, "")

	client := crmhttp.NewStdlibClient(
		crmhttp.WithUserAgent("crm-client-test/1.0"),
		crmhttp.WithRequestID(true),
	)

	_, err := client.Get(context.Background(), server.URL, nil, map[string]string{"Authorization": "k"})
	require.NoError(t, err)
	assert.Equal(t, "crm-client-test/1.0", got.headers.Get("User-Agent"))

	_, err = uuid.Parse(got.headers.Get("X-Request-Id"))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), server.URL, nil, map[string]string{"user-agent": "caller", "X-Request-Id": "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "caller", got.headers.Get("User-Agent"))
	assert.Equal(t, "fixed", got.headers.Get("X-Request-Id"))
}

func TestClient_RateLimiter(t *testing.T) {
	t.Parallel()

	calls := 0
	client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
		calls++

		return &crmhttp.RawResponse{StatusCode: http.StatusOK}, nil
	}), crmhttp.WithRateLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))

	_, err := client.Get(context.Background(), "https://api.example.com/crm", nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Get(ctx, "https://api.example.com/crm", nil, nil)
	require.Error(t, err)
	assert.True(t, crm.IsBadRequest(err))
	assert.Equal(t, 1, calls)
}

func TestClient_Metrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	metrics, err := crmhttp.NewMetrics(registry)
	require.NoError(t, err)

	status := http.StatusOK
	client := crmhttp.NewClient(crmhttp.SenderFunc(func(ctx context.Context, req *crmhttp.OutgoingRequest) (*crmhttp.RawResponse, error) {
		return &crmhttp.RawResponse{StatusCode: status}, nil
	}), crmhttp.WithMetrics(metrics))

	_, err = client.Get(context.Background(), "https://api.example.com/crm", nil, nil)
	require.NoError(t, err)

	status = http.StatusNotFound
	_, err = client.Get(context.Background(), "https://api.example.com/crm", nil, nil)
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Requests(http.MethodGet, "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Requests(http.MethodGet, "invalid_response_code")), 0)

	_, err = crmhttp.NewMetrics(registry)
	require.Error(t, err)
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", crmhttp.Outcome(nil))
	assert.Equal(t, "bad_request", crmhttp.Outcome(crm.NewRequestError(crm.KindBadRequest, "x", crm.RequestDetails{}, nil)))
	assert.Equal(t, "unknown_error", crmhttp.Outcome(ErrTestConnectionReset))
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server, _ := newCaptureServer(t, http.StatusOK, "ok")

	logger := &MockLogger{}
	client := crmhttp.NewRetryableClient(crmhttp.WithLogger(logger), crmhttp.WithDebug(true))

	_, err := client.Get(context.Background(), server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"HTTP Request", "HTTP Response"}, logger.messages())

	quiet := &MockLogger{}
	client = crmhttp.NewRetryableClient(crmhttp.WithLogger(quiet))

	_, err = client.Get(context.Background(), server.URL, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, quiet.messages())
}

func TestClient_RetriesWhenConfigured(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte("Success"))
	}))
	defer server.Close()

	client := crmhttp.NewRetryableClient(crmhttp.WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

	body, err := client.Get(context.Background(), server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Success", body)
	assert.Equal(t, 2, attempts)
}

func TestClient_NoRetriesByDefault(t *testing.T) {
	t.Parallel()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++

		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := crmhttp.NewRetryableClient().Get(context.Background(), server.URL, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, crm.StatusCode(err))
	assert.Equal(t, 1, attempts)
}
