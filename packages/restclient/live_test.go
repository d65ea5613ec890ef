package restclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedLive(t *testing.T, opts ...Option) (*Live, *mockRequester) {
	t.Helper()
	requester := &mockRequester{Response: &rhttp.Response{StatusCode: http.StatusOK}}
	client, err := NewLive("test.example.com", append(opts, WithRequester(requester))...)
	require.NoError(t, err)
	return client, requester
}

func TestLive_Delete(t *testing.T) {
	client, requester := newMockedLive(t)

	resp, err := client.Delete(context.Background(), "/v1/test/object", "asdf")

	require.NoError(t, err)
	assert.Same(t, requester.Response, resp)
	assert.Equal(t, 1, requester.CallCount)
	assert.Equal(t, &rhttp.Request{
		Method:  "DELETE",
		URL:     client.Composer().DeleteURL("/v1/test/object", "asdf"),
		Headers: AddJSONHeaders(nil),
		Timeout: client.Config().ResponseTimeout,
	}, requester.LastRequest())
}

func TestLive_Get(t *testing.T) {
	client, requester := newMockedLive(t)

	resp, err := client.Get(context.Background(), "/v1/test/object", Query{"code": "asdf"})

	require.NoError(t, err)
	assert.Same(t, requester.Response, resp)
	assert.Equal(t, 1, requester.CallCount)

	req := requester.LastRequest()
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "http://test.example.com:80/v1/test/object?code=asdf", req.URL)
	assert.Equal(t, map[string]string{"Content-Type": "application/json"}, req.Headers)
	assert.Equal(t, 10*time.Second, req.Timeout)
	assert.Nil(t, req.Body)
}

func TestLive_Post(t *testing.T) {
	client, requester := newMockedLive(t, WithResponseTimeout(2*time.Second))

	resp, err := client.Post(context.Background(), "/v1/test/object", Payload{"code": "asdf"})

	require.NoError(t, err)
	assert.Same(t, requester.Response, resp)
	assert.Equal(t, 1, requester.CallCount)

	fullURL, _ := client.Composer().PostURL("/v1/test/object", nil)
	req := requester.LastRequest()
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, fullURL, req.URL)
	assert.JSONEq(t, `{"code":"asdf"}`, string(req.Body))
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
	assert.Equal(t, 2*time.Second, req.Timeout)
}

func TestLive_PostNilPayloadSendsNoBody(t *testing.T) {
	client, requester := newMockedLive(t)

	_, err := client.Post(context.Background(), "/v1/test/object", nil)

	require.NoError(t, err)
	assert.Nil(t, requester.LastRequest().Body)
}

func TestLive_PostUnencodablePayload(t *testing.T) {
	client, requester := newMockedLive(t)

	_, err := client.Post(context.Background(), "/v1/test/object", Payload{"fn": func() {}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "encode POST payload")
	assert.Equal(t, 0, requester.CallCount)
}

func TestLive_TransportErrorPassesThrough(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")
	requester := &mockRequester{Err: transportErr}
	client, err := NewLive("test.example.com", WithRequester(requester))
	require.NoError(t, err)

	resp, err := client.Get(context.Background(), "/health", nil)

	assert.Nil(t, resp)
	assert.Same(t, transportErr, err)
}

func TestLive_FreshHeadersPerCall(t *testing.T) {
	client, requester := newMockedLive(t)

	_, _ = client.Get(context.Background(), "/a", nil)
	requester.LastRequest().Headers["X-Leak"] = "yes"
	_, _ = client.Get(context.Background(), "/b", nil)

	assert.NotContains(t, requester.LastRequest().Headers, "X-Leak")
}

func TestLive_AgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/v1/testing/hello", r.URL.Path)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"message":"hello tester"}`))
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write(body)
		case http.MethodDelete:
			assert.Equal(t, "/v1/testing/goodbye/you", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	client, err := NewLive("ignored", WithConfig(configFromServer(t, server)))
	require.NoError(t, err)
	ctx := context.Background()

	resp, err := client.Get(ctx, "/v1/testing/hello", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"hello tester"}`, resp.BodyString())

	resp, err = client.Post(ctx, "/v1/testing/hello", Payload{"message": "test in-out"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"test in-out"}`, resp.BodyString())

	resp, err = client.Delete(ctx, "/v1/testing/goodbye", "you")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestLive_ResponseTimeoutElapses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	cfg := configFromServer(t, server)
	cfg.ResponseTimeout = 50 * time.Millisecond
	client, err := NewLive("ignored", WithConfig(cfg))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/slow", nil)

	assert.Error(t, err)
}
