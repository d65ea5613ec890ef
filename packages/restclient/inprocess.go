package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/abdul-hamid-achik/restharness/packages/apptest"
	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
)

// inProcessHostname only fills Config; in-process URLs never carry a host.
const inProcessHostname = "inprocess.example.com"

// InProcess dispatches every call into an in-memory application.
// Composed URLs are relative and there is no timeout.
type InProcess struct {
	config      Config
	composer    *Composer
	app         http.Handler
	testClient  *apptest.Simulator
	formPayload bool
}

var _ Client = (*InProcess)(nil)

// NewInProcess binds to app. When app implements apptest.TestModer its
// testing mode is switched on here, before any request is made.
func NewInProcess(app http.Handler, opts ...Option) *InProcess {
	o := newOptions(inProcessHostname, opts)

	if moder, ok := app.(apptest.TestModer); ok {
		moder.EnableTestMode()
	}

	return &InProcess{
		config:      o.config,
		composer:    NewComposer("", o.logger),
		app:         app,
		testClient:  apptest.NewSimulator(app),
		formPayload: o.formPayload,
	}
}

func (c *InProcess) Config() Config {
	return c.config
}

func (c *InProcess) Composer() *Composer {
	return c.composer
}

// App returns the bound application.
func (c *InProcess) App() http.Handler {
	return c.app
}

func (c *InProcess) Delete(ctx context.Context, path string, objectKey any) (*rhttp.Response, error) {
	return c.testClient.Delete(ctx, c.composer.DeleteURL(path, objectKey), AddJSONHeaders(nil))
}

func (c *InProcess) Get(ctx context.Context, path string, query Query) (*rhttp.Response, error) {
	return c.testClient.Get(ctx, c.composer.GetURL(path, query), AddJSONHeaders(nil))
}

// Post sends payload as JSON, or form-encoded with a matching content type
// when built WithFormPayload.
func (c *InProcess) Post(ctx context.Context, path string, payload Payload) (*rhttp.Response, error) {
	fullURL, payload := c.composer.PostURL(path, payload)
	headers := AddJSONHeaders(nil)

	if c.formPayload {
		headers[headerContentType] = mimeForm
		return c.testClient.Post(ctx, fullURL, headers, encodeForm(payload))
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode POST payload for %s: %w", fullURL, err)
		}
	}
	return c.testClient.Post(ctx, fullURL, headers, body)
}
