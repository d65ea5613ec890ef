// Package restclient composes REST request URLs and payloads and dispatches
// them through interchangeable transports.
//
// Three transports implement Client with identical signatures and identical
// URL composition:
//   - Live sends real network requests through packages/http
//   - InProcess dispatches into an in-memory http.Handler through apptest
//   - Stub composes the request and reports ErrNotImplemented
//
// Test code written against Client runs unchanged against a deployed service
// or an in-process application.
package restclient
