package cscart

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/deploymenttheory/go-api-sdk-cscart/credentials"
	"github.com/deploymenttheory/go-api-sdk-cscart/endpoint"
	"github.com/deploymenttheory/go-api-sdk-cscart/httpclient"
	"github.com/deploymenttheory/go-api-sdk-cscart/logger"
	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/deploymenttheory/go-api-sdk-cscart/sessionstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = credentials.MustNew("admin@example.com", "6sY4j3l9")

type recorded struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Auth        string
	Body        string
}

// recordingServer answers every request with status and body and remembers the last request.
type recordingServer struct {
	*httptest.Server
	mu     sync.Mutex
	last   recorded
	status int
	body   string
}

func newRecordingServer(t *testing.T, status int, body string) *recordingServer {
	t.Helper()
	rs := &recordingServer{status: status, body: body}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		rs.mu.Lock()
		rs.last = recorded{
			Method:      r.Method,
			Path:        r.URL.EscapedPath(),
			Query:       r.URL.Query(),
			ContentType: r.Header.Get("Content-Type"),
			Auth:        r.Header.Get("Authorization"),
			Body:        string(raw),
		}
		status, body := rs.status, rs.body
		rs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) Last() recorded {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.last
}

func newTestClient(t *testing.T, baseURL string, sessions sessionstore.Store) *Client {
	t.Helper()
	client, err := New(Config{
		BaseURL:     baseURL,
		Credentials: testCreds,
		HTTP:        httpclient.ClientConfig{Logger: logger.NewNopLogger()},
		Sessions:    sessions,
	})
	require.NoError(t, err)
	return client
}

func mustRoot(t *testing.T) endpoint.Endpoint {
	t.Helper()
	root, err := endpoint.New("https://shop.example")
	require.NoError(t, err)
	return root
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{BaseURL: "shop.example", Credentials: testCreds})
	assert.Error(t, err)

	_, err = New(Config{BaseURL: "https://shop.example"})
	assert.ErrorIs(t, err, credentials.ErrInvalidCredentials)

	_, err = New(Config{BaseURL: "https://shop.example", Credentials: testCreds, HTTP: httpclient.ClientConfig{LogLevel: "loud"}})
	assert.Error(t, err)

	client, err := New(Config{BaseURL: "https://shop.example", Credentials: testCreds, HTTP: httpclient.ClientConfig{Logger: logger.NewNopLogger()}})
	require.NoError(t, err)
	assert.IsType(t, &sessionstore.MemoryStore{}, client.Sessions)
}

func TestPing(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL, nil)

	outcome, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.IsSuccess())
	assert.Equal(t, recorded{Method: "GET", Path: "/", Query: url.Values{}, Auth: testCreds.Header()}, server.Last())
}

func TestBaseURLPathIsKept(t *testing.T) {
	server := newRecordingServer(t, http.StatusOK, `{"orders":[]}`)
	client := newTestClient(t, server.URL+"/shop/", nil)

	_, err := client.Orders.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/shop/api/orders", server.Last().Path)
}

// stubExecutor returns a fixed result without any I/O.
type stubExecutor struct {
	outcome *response.Outcome
	err     error
	calls   []*httpclient.Request
}

func (s *stubExecutor) Execute(_ context.Context, req *httpclient.Request, _ credentials.Credentials) (*response.Outcome, error) {
	s.calls = append(s.calls, req)
	return s.outcome, s.err
}

func TestFacadesReturnOutcomeUnchanged(t *testing.T) {
	want := response.Normalize(http.StatusUnprocessableEntity, nil, []byte(`{"message":"Invalid"}`))
	stub := &stubExecutor{outcome: want}
	client, err := New(Config{BaseURL: "https://shop.example", Credentials: testCreds, Executor: stub})
	require.NoError(t, err)

	got, err := client.Orders.Update(context.Background(), 1, map[string]string{"status": "C"})
	require.NoError(t, err)
	assert.Same(t, want, got)

	stub.outcome, stub.err = nil, errors.New("boom")
	_, err = client.Stores.Delete(context.Background(), 3)
	assert.EqualError(t, err, "boom")
	require.Len(t, stub.calls, 2)
	assert.Equal(t, "https://shop.example/api/stores/3", stub.calls[1].URL)
}

func TestListParams_Values(t *testing.T) {
	var nilParams *ListParams
	assert.Nil(t, nilParams.Values())

	params := &ListParams{Page: 2, ItemsPerPage: 50, Extra: url.Values{"status": {"P"}, "page": {"9"}}}
	values := params.Values()
	assert.Equal(t, url.Values{"page": {"2"}, "items_per_page": {"50"}, "status": {"P"}}, values)
	assert.Equal(t, []string{"9"}, params.Extra["page"], "Extra is not modified")

	assert.Empty(t, (&ListParams{}).Values())
}
