// Package apptest dispatches requests straight into an in-process web
// application, bypassing the network.
//
// A Simulator plays the part of a framework's test client: it builds a
// request, runs it through the application's http.Handler with an
// httptest.ResponseRecorder and returns the recorded response. Applications
// that carry a testing flag implement TestModer so transports can switch it on
// when they bind to them.
package apptest
