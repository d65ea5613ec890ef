// Package suite provides testify suites that build one restclient transport
// per suite and share it across every test method.
//
// Embed LiveSuite to run against a deployed service:
//
//	type HelloSuite struct {
//		suite.LiveSuite
//	}
//
//	func (s *HelloSuite) TestHello() {
//		resp, err := s.Client.Get(context.Background(), "/v1/testing/hello", nil)
//		s.Require().NoError(err)
//		s.Equal(200, resp.StatusCode)
//	}
//
//	func TestHello(t *testing.T) {
//		testifysuite.Run(t, &HelloSuite{LiveSuite: suite.LiveSuite{Host: "api.example.com"}})
//	}
//
// InProcessSuite does the same for an http.Handler.
package suite

import (
	"log/slog"
	"net/http"
	"time"

	testifysuite "github.com/stretchr/testify/suite"

	"github.com/abdul-hamid-achik/restharness/packages/core/config"
	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
	"github.com/abdul-hamid-achik/restharness/packages/restclient"
)

// LiveSuite builds a *restclient.Live in SetupSuite. Zero-valued target
// fields are filled from the config file and RESTHARNESS_* environment,
// then from the defaults http, example.com and 80.
type LiveSuite struct {
	testifysuite.Suite

	Scheme          string
	Host            string
	Port            int
	ResponseTimeout time.Duration
	// ConfigPath selects a config file. Empty searches the working directory.
	ConfigPath string
	Logger     *slog.Logger

	Client *restclient.Live
}

// SetupSuite resolves the target and builds Client. Suites overriding it
// must call it first.
func (s *LiveSuite) SetupSuite() {
	cfg, err := config.LoadConfig(s.ConfigPath)
	s.Require().NoError(err, "load config")

	target := s.resolve(cfg)
	cfg.ResponseTimeout = target.ResponseTimeout

	client, err := restclient.NewLive(target.Hostname,
		restclient.WithConfig(target),
		restclient.WithLogger(s.Logger),
		restclient.WithRequester(rhttp.NewClient(cfg.HTTPOptions()...)),
	)
	s.Require().NoError(err, "build live client")
	s.Client = client
}

func (s *LiveSuite) resolve(cfg *config.Config) restclient.Config {
	target := cfg.ClientConfig()
	if s.Scheme != "" {
		target.Scheme = s.Scheme
	}
	if s.Host != "" {
		target.Hostname = s.Host
	}
	if s.Port != 0 {
		target.Port = s.Port
	}
	if s.ResponseTimeout > 0 {
		target.ResponseTimeout = s.ResponseTimeout
	}

	defaults := restclient.DefaultConfig(config.DefaultHostname)
	if target.Scheme == "" {
		target.Scheme = defaults.Scheme
	}
	if target.Hostname == "" {
		target.Hostname = defaults.Hostname
	}
	if target.Port == 0 {
		target.Port = defaults.Port
	}
	if target.ResponseTimeout <= 0 {
		target.ResponseTimeout = defaults.ResponseTimeout
	}
	return target
}

// InProcessSuite builds a *restclient.InProcess bound to App in SetupSuite.
type InProcessSuite struct {
	testifysuite.Suite

	App http.Handler
	// FormPayload sends POST payloads form-encoded.
	FormPayload bool
	Logger      *slog.Logger

	Client *restclient.InProcess
}

// SetupSuite builds Client. Suites overriding it must call it first.
func (s *InProcessSuite) SetupSuite() {
	s.Require().NotNil(s.App, "InProcessSuite needs an App")

	opts := []restclient.Option{restclient.WithLogger(s.Logger)}
	if s.FormPayload {
		opts = append(opts, restclient.WithFormPayload())
	}
	s.Client = restclient.NewInProcess(s.App, opts...)
}
