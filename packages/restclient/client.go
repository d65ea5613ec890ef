package restclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
	"github.com/abdul-hamid-achik/restharness/packages/logging"
)

const (
	// DefaultScheme is used when no scheme option is given
	DefaultScheme = "http"
	// DefaultPort is used when no port option is given
	DefaultPort = 80
	// DefaultResponseTimeout bounds each live request
	DefaultResponseTimeout = 10 * time.Second
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid client config")

// Query holds query string parameters. Values are rendered with their
// default text form; slice values repeat the key.
type Query map[string]any

// Payload is a POST body before encoding.
type Payload map[string]any

// Headers are request headers keyed by canonical or literal name.
type Headers map[string]string

// Client is the capability set shared by every transport.
type Client interface {
	Delete(ctx context.Context, path string, objectKey any) (*rhttp.Response, error)
	Get(ctx context.Context, path string, query Query) (*rhttp.Response, error)
	Post(ctx context.Context, path string, payload Payload) (*rhttp.Response, error)
}

// Config is the target a client was built for. It is copied into the client
// at construction and never changes afterwards.
type Config struct {
	Scheme          string
	Hostname        string
	Port            int
	ResponseTimeout time.Duration
}

// DefaultConfig returns the defaults for hostname.
func DefaultConfig(hostname string) Config {
	return Config{
		Scheme:          DefaultScheme,
		Hostname:        hostname,
		Port:            DefaultPort,
		ResponseTimeout: DefaultResponseTimeout,
	}
}

func (c Config) Validate() error {
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q (only http and https are allowed)", ErrInvalidConfig, c.Scheme)
	}
	if c.Hostname == "" {
		return fmt.Errorf("%w: hostname is required", ErrInvalidConfig)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.ResponseTimeout <= 0 {
		return fmt.Errorf("%w: response timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// BaseURL returns "{scheme}://{hostname}:{port}".
func (c Config) BaseURL() string {
	return BuildBaseURL(c.Scheme, c.Hostname, c.Port)
}

type options struct {
	config      Config
	logger      *slog.Logger
	requester   Requester
	formPayload bool
}

// Option configures a client at construction.
type Option func(*options)

func WithPort(port int) Option {
	return func(o *options) {
		o.config.Port = port
	}
}

func WithScheme(scheme string) Option {
	return func(o *options) {
		o.config.Scheme = scheme
	}
}

// WithResponseTimeout sets how long a live request may wait for its response.
// Other transports store the value without using it.
func WithResponseTimeout(d time.Duration) Option {
	return func(o *options) {
		o.config.ResponseTimeout = d
	}
}

// WithConfig replaces the whole target configuration, hostname included.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithLogger routes composition debug lines to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRequester sets the HTTP client used by Live. Ignored by other transports.
func WithRequester(r Requester) Option {
	return func(o *options) {
		o.requester = r
	}
}

// WithFormPayload makes InProcess send POST payloads form-encoded instead of
// as JSON. Content-Type is then application/x-www-form-urlencoded rather than
// the application/json every other request carries, so frameworks that
// dispatch on content type parse the form. Ignored by other transports.
func WithFormPayload() Option {
	return func(o *options) {
		o.formPayload = true
	}
}

func newOptions(hostname string, opts []Option) *options {
	o := &options{
		config: DefaultConfig(hostname),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = logging.OrDiscard(o.logger)
	return o
}
