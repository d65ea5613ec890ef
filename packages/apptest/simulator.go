package apptest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
)

const (
	// simulatedHost is the Host header seen by the application
	simulatedHost = "example.com"
	// simulatedRemoteAddr is a TEST-NET-1 address, same as httptest.NewRequest
	simulatedRemoteAddr = "192.0.2.1:1234"
)

// TestModer is implemented by applications that have a testing mode.
type TestModer interface {
	EnableTestMode()
}

// Simulator is a test client bound to one application handler.
type Simulator struct {
	handler http.Handler
}

func NewSimulator(handler http.Handler) *Simulator {
	return &Simulator{handler: handler}
}

// Do runs req through the application. URLs are usually relative; absolute
// URLs are accepted and only their path and query reach the handler's routing.
func (s *Simulator) Do(ctx context.Context, req *rhttp.Request) (*rhttp.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	if httpReq.Body == nil {
		httpReq.Body = http.NoBody
	}
	httpReq.RequestURI = httpReq.URL.RequestURI()
	httpReq.RemoteAddr = simulatedRemoteAddr
	if httpReq.Host == "" {
		httpReq.Host = simulatedHost
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	start := time.Now()
	s.handler.ServeHTTP(recorder, httpReq)
	duration := time.Since(start)

	result := recorder.Result()
	defer result.Body.Close()

	respBody, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, err
	}

	return rhttp.NewResponse(result.StatusCode, result.Header, respBody, duration), nil
}

func (s *Simulator) Delete(ctx context.Context, url string, headers map[string]string) (*rhttp.Response, error) {
	return s.Do(ctx, &rhttp.Request{
		Method:  http.MethodDelete,
		URL:     url,
		Headers: headers,
	})
}

func (s *Simulator) Get(ctx context.Context, url string, headers map[string]string) (*rhttp.Response, error) {
	return s.Do(ctx, &rhttp.Request{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headers,
	})
}

func (s *Simulator) Post(ctx context.Context, url string, headers map[string]string, data []byte) (*rhttp.Response, error) {
	return s.Do(ctx, &rhttp.Request{
		Method:  http.MethodPost,
		URL:     url,
		Headers: headers,
		Body:    data,
	})
}
