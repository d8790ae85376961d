package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"github.com/deploymenttheory/go-api-sdk-cscart/mocklogger"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/deploymenttheory/go-api-sdk-cscart/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"
)

var testCreds = credentials.MustNew("admin@example.com", "6sY4j3l9")

func newTestClient(t testing.TB, config ClientConfig) *Client {
	t.Helper()
	if config.Logger == nil {
		config.Logger = logger.NewNopLogger()
	}
	client, err := BuildClient(config)
	require.NoError(t, err)
	return client
}

func TestExecute_OrderScenarios(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"orders":[{"order_id":1}]}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/orders/":
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"user_id":"0"}` || r.Header.Get("Content-Type") != ContentTypeJSON {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"order_id":5}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/orders/7":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Object not found"}`)
		}
	}))
	defer server.Close()

	client := newTestClient(t, ClientConfig{})

	tests := []struct {
		name       string
		req        *Request
		wantKind   response.Kind
		wantStatus int
		wantValue  string // JSON encoding of the decoded value
	}{
		{"list orders", NewRequest(http.MethodGet, server.URL+"/api/orders/", nil), response.KindSuccess, 200, `{"orders":[{"order_id":1}]}`},
		{"create order", NewRequest(http.MethodPost, server.URL+"/api/orders/", JSONBody(map[string]string{"user_id": "0"})), response.KindSuccess, 201, `{"order_id":5}`},
		{"delete order", NewRequest(http.MethodDelete, server.URL+"/api/orders/7", nil), response.KindSuccess, 204, `null`},
		{"missing order", NewRequest(http.MethodGet, server.URL+"/api/orders/999", nil), response.KindHTTPError, 404, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := client.Execute(context.Background(), tt.req, testCreds)
			require.NoError(t, err)
			require.Equal(t, tt.wantKind, outcome.Kind, "outcome: %+v", outcome)
			assert.Equal(t, tt.wantStatus, outcome.StatusCode)

			if tt.wantKind == response.KindSuccess {
				encoded, err := json.Marshal(outcome.Value)
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantValue, string(encoded))
				return
			}
			assert.Equal(t, 404, outcome.HTTPError.StatusCode)
			assert.Equal(t, `{"message":"Object not found"}`, outcome.HTTPError.Body)
			assert.Equal(t, "Object not found", outcome.HTTPError.Message)
		})
	}
	assert.Equal(t, int32(len(tests)), atomic.LoadInt32(&hits), "one request per call")
}

func TestExecute_DefaultHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, ClientConfig{})
	outcome, err := client.Execute(context.Background(), NewRequest(http.MethodGet, server.URL, nil), testCreds)
	require.NoError(t, err)
	assert.Equal(t, response.KindSuccess, outcome.Kind)
	assert.Nil(t, outcome.Value)

	assert.Equal(t, testCreds.Header(), got.Get("Authorization"))
	assert.Equal(t, ContentTypeJSON, got.Get("Accept"))
	assert.Equal(t, version.GetUserAgentHeader(), got.Get("User-Agent"))
	assert.Empty(t, got.Get("Content-Type"), "no body, no content type")
}

func TestExecute_HeaderOverridesAndQuery(t *testing.T) {
	var got *http.Request
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	client := newTestClient(t, ClientConfig{UserAgent: "cscart-admin/2.0"})
	req := NewRequest(http.MethodPut, server.URL+"/api/combinations/abc?lang=en", FormBody(FormFromMap(map[string]any{
		"amount":      5,
		"combination": map[string]any{"12": 34},
	}))).
		WithQuery("product_id", "12").
		WithHeader("Authorization", "Basic b3ZlcnJpZGU=")

	outcome, err := client.Execute(context.Background(), req, testCreds)
	require.NoError(t, err)
	require.Equal(t, response.KindSuccess, outcome.Kind)

	assert.Equal(t, "Basic b3ZlcnJpZGU=", got.Header.Get("Authorization"))
	assert.Equal(t, "cscart-admin/2.0", got.Header.Get("User-Agent"))
	assert.Equal(t, ContentTypeForm, got.Header.Get("Content-Type"))
	assert.Equal(t, "en", got.URL.Query().Get("lang"))
	assert.Equal(t, "12", got.URL.Query().Get("product_id"))
	assert.Equal(t, "amount=5&combination%5B12%5D=34", body)
}

func TestExecute_ProgrammerErrorsBeforeIO(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := newTestClient(t, ClientConfig{})

	tests := []struct {
		name  string
		req   *Request
		creds credentials.Credentials
		check func(t *testing.T, err error)
	}{
		{"nil request", nil, testCreds, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNilRequest) }},
		{"patch", NewRequest(http.MethodPatch, server.URL, nil), testCreds, func(t *testing.T, err error) {
			var unsupported *UnsupportedMethodError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, http.MethodPatch, unsupported.Method)
		}},
		{"head", NewRequest(http.MethodHead, server.URL, nil), testCreds, func(t *testing.T, err error) {
			var unsupported *UnsupportedMethodError
			assert.ErrorAs(t, err, &unsupported)
		}},
		{"relative url", NewRequest(http.MethodGet, "/api/orders", nil), testCreds, func(t *testing.T, err error) { assert.Error(t, err) }},
		{"unencodable body", NewRequest(http.MethodPost, server.URL, JSONBody(map[string]any{"ch": make(chan int)})), testCreds, func(t *testing.T, err error) { assert.Error(t, err) }},
		{"zero credentials", NewRequest(http.MethodGet, server.URL, nil), credentials.Credentials{}, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, credentials.ErrInvalidCredentials)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := client.Execute(context.Background(), tt.req, tt.creds)
			assert.Nil(t, outcome)
			tt.check(t, err)
		})
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestExecute_LowercaseMethodAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `"`+r.Method+`"`)
	}))
	defer server.Close()

	outcome, err := newTestClient(t, ClientConfig{}).Execute(context.Background(), NewRequest("get", server.URL, nil), testCreds)
	require.NoError(t, err)
	assert.Equal(t, "GET", outcome.Value)
}

func TestExecute_TransportErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		target := server.URL + "/api/orders"
		server.Close()

		outcome, err := newTestClient(t, ClientConfig{}).Execute(context.Background(), NewRequest(http.MethodGet, target, nil), testCreds)
		require.NoError(t, err)
		require.Equal(t, response.KindTransportError, outcome.Kind)
		assert.Equal(t, http.MethodGet, outcome.TransportError.Method)
		assert.Equal(t, target, outcome.TransportError.URL)
		assert.Error(t, outcome.TransportError.Cause)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()
		defer close(release)

		client := newTestClient(t, ClientConfig{CustomTimeout: 50 * time.Millisecond})
		outcome, err := client.Execute(context.Background(), NewRequest(http.MethodGet, server.URL, nil), testCreds)
		require.NoError(t, err)
		require.Equal(t, response.KindTransportError, outcome.Kind)
		assert.True(t, outcome.TransportError.Timeout())
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		outcome, err := newTestClient(t, ClientConfig{}).Execute(ctx, NewRequest(http.MethodGet, server.URL, nil), testCreds)
		require.NoError(t, err)
		require.Equal(t, response.KindTransportError, outcome.Kind)
		assert.True(t, errors.Is(outcome.Err(), context.Canceled))
	})
}

func TestExecute_MalformedSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"orders":[{"order_id":1}`)
	}))
	defer server.Close()

	outcome, err := newTestClient(t, ClientConfig{}).Execute(context.Background(), NewRequest(http.MethodGet, server.URL, nil), testCreds)
	require.NoError(t, err)
	require.Equal(t, response.KindDecodeError, outcome.Kind)
	assert.Equal(t, `{"orders":[{"order_id":1}`, outcome.DecodeError.Body)
}

func TestExecute_DoesNotLogCredentials(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewLogger(zap.New(core), logger.LogLevelDebug)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, ClientConfig{Logger: log, HideSensitiveData: true})
	_, err := client.Execute(context.Background(), NewRequest(http.MethodGet, server.URL, nil), testCreds)
	require.NoError(t, err)

	require.NotZero(t, logs.Len())
	for _, entry := range logs.All() {
		for key, value := range entry.ContextMap() {
			encoded, _ := json.Marshal(value)
			assert.NotContains(t, string(encoded), testCreds.Token(), "field %q of %q", key, entry.Message)
		}
	}
}

func TestExecute_ConcurrencyLimit(t *testing.T) {
	var current, peak int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&current, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&current, -1)
		_, _ = io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := newTestClient(t, ClientConfig{MaxConcurrentRequests: 2})
	done := make(chan *response.Outcome)
	for i := 0; i < 8; i++ {
		go func() {
			outcome, _ := client.Execute(context.Background(), NewRequest(http.MethodGet, server.URL, nil), testCreds)
			done <- outcome
		}()
	}
	for i := 0; i < 8; i++ {
		outcome := <-done
		require.NotNil(t, outcome)
		assert.Equal(t, response.KindSuccess, outcome.Kind)
	}

	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	assert.Equal(t, int64(8), client.Concurrency.Snapshot().TotalRequests)
}

// echoServer replies with the request body and the status code given in ?status=.
func echoServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code, _ := strconv.Atoi(r.URL.Query().Get("status"))
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(code)
		_, _ = w.Write(body)
	}))
}

func TestExecute_AnySuccessDecodesProperty(t *testing.T) {
	server := echoServer()
	defer server.Close()
	client := newTestClient(t, ClientConfig{})

	rapid.Check(t, func(t *rapid.T) {
		code := rapid.IntRange(200, 299).Filter(func(c int) bool { return c != http.StatusNoContent }).Draw(t, "code")
		payload := rapid.MapOf(rapid.StringMatching(`[a-z_]{1,8}`), rapid.IntRange(-1000, 1000)).Draw(t, "payload")

		req := NewRequest(http.MethodPost, server.URL, JSONBody(payload)).WithQuery("status", strconv.Itoa(code))
		outcome, err := client.Execute(context.Background(), req, testCreds)
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if outcome.Kind != response.KindSuccess || outcome.StatusCode != code {
			t.Fatalf("status %d classified as %s", code, outcome.Kind)
		}

		want, _ := json.Marshal(payload)
		got, _ := json.Marshal(outcome.Value)
		if string(want) != string(got) {
			t.Fatalf("decoded %s, want %s", got, want)
		}
	})
}

func TestExecute_AnyNonSuccessIsHTTPErrorProperty(t *testing.T) {
	server := echoServer()
	defer server.Close()
	client := newTestClient(t, ClientConfig{})

	rapid.Check(t, func(t *rapid.T) {
		code := rapid.IntRange(300, 599).Draw(t, "code")
		body := rapid.SampledFrom([]string{`{"order_id":1}`, `not json`, ``, `[]`}).Draw(t, "body")

		req := NewRequest(http.MethodPost, server.URL, RawBody("text/plain", []byte(body))).WithQuery("status", strconv.Itoa(code))
		outcome, err := client.Execute(context.Background(), req, testCreds)
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if outcome.Kind != response.KindHTTPError || outcome.HTTPError.StatusCode != code {
			t.Fatalf("status %d classified as %s", code, outcome.Kind)
		}
		if code != http.StatusNotModified && !strings.EqualFold(outcome.HTTPError.Body, body) {
			t.Fatalf("body %q, want %q", outcome.HTTPError.Body, body)
		}
	})
}

func TestExecute_LogsRequestLifecycle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Deprecation", "true")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	log := mocklogger.NewMockLogger()
	client := newTestClient(t, ClientConfig{Logger: log})
	_, err := client.Execute(context.Background(), NewRequest(http.MethodGet, server.URL, nil), testCreds)
	require.NoError(t, err)

	assert.True(t, log.CalledWith("LogRequestStart"))
	assert.True(t, log.CalledWith("LogRequestEnd"))
	assert.True(t, log.CalledWith("LogError"), "non-success outcomes are logged")
	assert.True(t, log.CalledWith("Warn"), "deprecation header")
}

func TestExecute_RedirectsAreReturnedByDefault(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Redirect(w, r, "/api/orders/new", http.StatusMovedPermanently)
	}))
	defer server.Close()

	log := mocklogger.NewMockLogger()
	client := newTestClient(t, ClientConfig{Logger: log})
	outcome, err := client.Execute(context.Background(), NewRequest(http.MethodGet, server.URL+"/api/orders/old", nil), testCreds)
	require.NoError(t, err)

	require.Equal(t, response.KindHTTPError, outcome.Kind)
	assert.Equal(t, http.StatusMovedPermanently, outcome.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.True(t, log.CalledWith("Warn"))
}
