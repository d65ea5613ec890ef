// Package http provides the network HTTP client used by the live REST transport.
//
// It wraps the standard library's http package with:
//   - Per-request timeouts bound through a context deadline
//   - Redirect handling
//   - Optional proxy and TLS verification settings
//   - Fully read response bodies, so callers never manage connections
package http
