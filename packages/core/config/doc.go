// Package config handles configuration loading and management for restharness.
//
// It provides functionality for:
//   - Loading the target service from .restharness.yaml or restharness.yaml files
//   - Default configuration values
//   - RESTHARNESS_* environment overrides
//   - Building restclient and live HTTP client settings from the result
package config
