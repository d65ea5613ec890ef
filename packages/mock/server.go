// Package mock provides a mock HTTP server that serves canned responses
// loaded from YAML route fixtures.
package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abdul-hamid-achik/restharness/packages/logging"
)

const (
	// DefaultPort is the port StartWithContext listens on by default
	DefaultPort = 3000
	// RequestIDHeader is set on every response the server writes
	RequestIDHeader = "X-Request-Id"
	// MetricsPath serves the server's prometheus registry when listening
	MetricsPath = "/metrics"

	shutdownTimeout = 5 * time.Second
)

// Server is a mock HTTP server. It is an http.Handler, so tests can drive it
// in process without opening a socket.
type Server struct {
	mu       sync.RWMutex
	router   *Router
	testMode bool

	port     int
	delay    time.Duration
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

// Option is a functional option for Server
type Option func(*Server)

// WithPort sets the server port
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDelay adds a delay to all responses. Test mode ignores it.
func WithDelay(delay time.Duration) Option {
	return func(s *Server) {
		s.delay = delay
	}
}

// WithLogger sets the logger for request and lifecycle messages
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new mock server with an empty route table
func NewServer(opts ...Option) *Server {
	s := &Server{
		router:   NewRouter(),
		port:     DefaultPort,
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDiscard(s.logger)
	s.metrics = newMetrics(s.registry)
	return s
}

// EnableTestMode drops the configured response delay.
func (s *Server) EnableTestMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testMode = true
}

// Registry returns the registry request counters are recorded in
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Port returns the configured listen port
func (s *Server) Port() int {
	return s.port
}

// AddRoute appends one route to the route table
func (s *Server) AddRoute(spec RouteSpec) error {
	route, err := spec.toRoute()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.AddRoute(route)
	return nil
}

// LoadFixture appends every route of a parsed fixture
func (s *Server) LoadFixture(fixture *Fixture) error {
	routes, err := buildRoutes(fixture)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, route := range routes {
		s.router.AddRoute(route)
	}
	return nil
}

// LoadFile loads routes from a YAML fixture file
func (s *Server) LoadFile(path string) error {
	fixture, err := ParseFixtureFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse file %s: %w", path, err)
	}
	if err := s.LoadFixture(fixture); err != nil {
		return fmt.Errorf("failed to load file %s: %w", path, err)
	}
	return nil
}

// LoadFiles loads routes from multiple fixture files
func (s *Server) LoadFiles(paths []string) error {
	for _, path := range paths {
		if err := s.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// Reload replaces the route table with the routes of paths. The old table
// stays in place if any file fails to load.
func (s *Server) Reload(paths []string) error {
	router := NewRouter()
	for _, path := range paths {
		fixture, err := ParseFixtureFile(path)
		if err != nil {
			return fmt.Errorf("failed to parse file %s: %w", path, err)
		}
		routes, err := buildRoutes(fixture)
		if err != nil {
			return fmt.Errorf("failed to load file %s: %w", path, err)
		}
		for _, route := range routes {
			router.AddRoute(route)
		}
	}

	s.mu.Lock()
	s.router = router
	s.mu.Unlock()

	s.logger.Info("Routes reloaded", "routes", len(router.Routes()), "files", len(paths))
	return nil
}

func buildRoutes(fixture *Fixture) ([]*Route, error) {
	routes := make([]*Route, 0, len(fixture.Routes))
	for _, spec := range fixture.Routes {
		route, err := spec.toRoute()
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// GetRoutes returns all registered routes
func (s *Server) GetRoutes() []*Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.router.Routes()
}

// Handler returns the handler used when listening on a port: the routes
// plus the metrics endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	mux.Handle("/", s)
	return mux
}

// StartWithContext listens on the configured port until ctx is done, then
// shuts down gracefully.
func (s *Server) StartWithContext(ctx context.Context) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve handles connections on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("Mock server shutdown", "error", err)
		}
	}()

	s.mu.RLock()
	routes := s.router.Routes()
	s.mu.RUnlock()

	s.logger.Info("Mock server starting", "addr", listener.Addr().String(), "routes", len(routes))
	for _, route := range routes {
		s.logger.Debug("Route", "method", route.Method, "path", route.PathPattern, "status", route.Response.StatusCode)
	}

	err := server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

// ServeHTTP answers r from the route table.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.mu.RLock()
	delay := s.delay
	if s.testMode {
		delay = 0
	}
	route, params := s.router.Match(r.Method, r.URL.Path)
	s.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	requestID := uuid.NewString()
	w.Header().Set(RequestIDHeader, requestID)

	if route == nil {
		s.metrics.record(r.Method, unmatchedRoute, http.StatusNotFound)
		s.logger.Debug("No route", "method", r.Method, "path", r.URL.Path, "request_id", requestID)
		http.NotFound(w, r)
		return
	}

	resp := route.Response
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}

	var body []byte
	if resp.Echo {
		data, err := readBody(r)
		if err != nil {
			s.metrics.record(r.Method, route.Label(), http.StatusBadRequest)
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		body = data
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			contentType = resp.ContentType
		}
		w.Header().Set("Content-Type", contentType)
	} else {
		body = []byte(resolveBodyParams(resp.Body, params))
		w.Header().Set("Content-Type", resp.ContentType)
	}

	w.WriteHeader(resp.StatusCode)
	if len(body) > 0 && bodyAllowed(r.Method, resp.StatusCode) {
		_, _ = w.Write(body)
	}

	s.metrics.record(r.Method, route.Label(), resp.StatusCode)
	s.logger.Debug("Served",
		"method", r.Method,
		"path", r.URL.Path,
		"route", route.Label(),
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	return io.ReadAll(r.Body)
}

func bodyAllowed(method string, status int) bool {
	if method == http.MethodHead {
		return false
	}
	return status != http.StatusNoContent && status != http.StatusNotModified
}

func resolveBodyParams(body string, params map[string]string) string {
	result := body
	for key, value := range params {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}
