package config

import (
	"github.com/abdul-hamid-achik/restharness/packages/restclient"
)

const (
	// DefaultHostname is the placeholder target used when nothing is configured
	DefaultHostname = "example.com"
	// DefaultMaxRedirects matches the live HTTP client's own limit
	DefaultMaxRedirects = 10
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Scheme:          restclient.DefaultScheme,
		Hostname:        DefaultHostname,
		Port:            restclient.DefaultPort,
		ResponseTimeout: restclient.DefaultResponseTimeout,
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    DefaultMaxRedirects,
		ValidateSSL:     BoolPtr(true),
		Proxy:           "",
		Verbose:         BoolPtr(false),
		NoColor:         BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Scheme == defaults.Scheme &&
		c.Hostname == defaults.Hostname &&
		c.Port == defaults.Port &&
		c.ResponseTimeout == defaults.ResponseTimeout &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.Proxy == defaults.Proxy &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
