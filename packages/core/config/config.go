package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
	"github.com/abdul-hamid-achik/restharness/packages/restclient"
	"gopkg.in/yaml.v3"
)

// Config represents the restharness configuration
type Config struct {
	Scheme          string        `yaml:"scheme,omitempty"`
	Hostname        string        `yaml:"hostname,omitempty"`
	Port            int           `yaml:"port,omitempty"`
	ResponseTimeout time.Duration `yaml:"response_timeout,omitempty"`
	FollowRedirects *bool         `yaml:"follow_redirects,omitempty"`
	MaxRedirects    int           `yaml:"max_redirects,omitempty"`
	ValidateSSL     *bool         `yaml:"validate_ssl,omitempty"`
	Proxy           string        `yaml:"proxy,omitempty"`
	Verbose         *bool         `yaml:"verbose,omitempty"`
	NoColor         *bool         `yaml:"no_color,omitempty"`
}

// Environment variables read by ApplyEnv
const (
	EnvScheme  = "RESTHARNESS_SCHEME"
	EnvHost    = "RESTHARNESS_HOST"
	EnvPort    = "RESTHARNESS_PORT"
	EnvTimeout = "RESTHARNESS_TIMEOUT"
)

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".restharness.yaml",
	".restharness.yml",
	"restharness.yaml",
	"restharness.yml",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = loadConfigFromFile(path)
	} else {
		cfg, err = FindAndLoadConfig(".")
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overrides target fields from RESTHARNESS_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvScheme); ok && v != "" {
		c.Scheme = v
	}
	if v, ok := lookup(EnvHost); ok && v != "" {
		c.Hostname = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Port = port
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.ResponseTimeout = d
	}
	return nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Scheme != "" {
		result.Scheme = other.Scheme
	}
	if other.Hostname != "" {
		result.Hostname = other.Hostname
	}
	if other.Port > 0 {
		result.Port = other.Port
	}
	if other.ResponseTimeout > 0 {
		result.ResponseTimeout = other.ResponseTimeout
	}
	if other.MaxRedirects > 0 {
		result.MaxRedirects = other.MaxRedirects
	}
	if other.Proxy != "" {
		result.Proxy = other.Proxy
	}

	// Boolean flags - only override if explicitly set in other config
	if other.FollowRedirects != nil {
		result.FollowRedirects = other.FollowRedirects
	}
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// ClientConfig returns the target part of the configuration.
func (c *Config) ClientConfig() restclient.Config {
	return restclient.Config{
		Scheme:          c.Scheme,
		Hostname:        c.Hostname,
		Port:            c.Port,
		ResponseTimeout: c.ResponseTimeout,
	}
}

// Validate checks the target part of the configuration.
func (c *Config) Validate() error {
	return c.ClientConfig().Validate()
}

// HTTPOptions returns live HTTP client options matching this configuration.
func (c *Config) HTTPOptions() []rhttp.ClientOption {
	opts := []rhttp.ClientOption{
		rhttp.WithTimeout(c.ResponseTimeout),
		rhttp.WithFollowRedirects(c.GetFollowRedirects()),
		rhttp.WithValidateSSL(c.GetValidateSSL()),
	}
	if c.MaxRedirects > 0 {
		opts = append(opts, rhttp.WithMaxRedirects(c.MaxRedirects))
	}
	if c.Proxy != "" {
		opts = append(opts, rhttp.WithProxy(c.Proxy))
	}
	return opts
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
