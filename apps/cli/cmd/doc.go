// Package cmd implements the restharness CLI commands using Cobra.
//
// Available commands:
//   - get, delete, post: Send one request through the live transport
//   - mock: Serve YAML route fixtures, optionally reloading on change
//   - config init, config show: Write a default config file or print the
//     resolved configuration
//   - version: Show restharness version information
//
// Target flags (--host, --port, --scheme, --timeout) override the config
// file and RESTHARNESS_* environment variables.
package cmd
