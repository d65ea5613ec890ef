package restclient

import (
	"context"
	"sync"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
)

// mockRequester records every request and returns a canned response.
type mockRequester struct {
	mu sync.Mutex

	Response *rhttp.Response
	Err      error

	Requests  []*rhttp.Request
	CallCount int
}

func (m *mockRequester) Do(ctx context.Context, req *rhttp.Request) (*rhttp.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.Requests = append(m.Requests, req)

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func (m *mockRequester) LastRequest() *rhttp.Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}
