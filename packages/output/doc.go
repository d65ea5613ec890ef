// Package output renders responses for the restharness CLI.
//
// ConsoleFormatter prints a colored status line and the body, indenting
// JSON. JSONFormatter emits one JSON document per exchange for scripts.
package output
