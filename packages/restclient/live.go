package restclient

import (
	"context"
	"encoding/json"
	"fmt"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
)

// Requester is the HTTP client a Live transport delegates to.
// *rhttp.Client satisfies it.
type Requester interface {
	Do(ctx context.Context, req *rhttp.Request) (*rhttp.Response, error)
}

// Live sends every call to a deployed service. Each verb makes exactly one
// Requester call; responses and transport errors come back unchanged.
type Live struct {
	config    Config
	composer  *Composer
	requester Requester
}

var _ Client = (*Live)(nil)

func NewLive(hostname string, opts ...Option) (*Live, error) {
	o := newOptions(hostname, opts)
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	requester := o.requester
	if requester == nil {
		requester = rhttp.NewClient(rhttp.WithTimeout(o.config.ResponseTimeout))
	}

	return &Live{
		config:    o.config,
		composer:  NewComposer(o.config.BaseURL(), o.logger),
		requester: requester,
	}, nil
}

func (l *Live) Config() Config {
	return l.config
}

func (l *Live) Composer() *Composer {
	return l.composer
}

func (l *Live) Delete(ctx context.Context, path string, objectKey any) (*rhttp.Response, error) {
	return l.requester.Do(ctx, &rhttp.Request{
		Method:  methodDelete,
		URL:     l.composer.DeleteURL(path, objectKey),
		Headers: AddJSONHeaders(nil),
		Timeout: l.config.ResponseTimeout,
	})
}

func (l *Live) Get(ctx context.Context, path string, query Query) (*rhttp.Response, error) {
	return l.requester.Do(ctx, &rhttp.Request{
		Method:  methodGet,
		URL:     l.composer.GetURL(path, query),
		Headers: AddJSONHeaders(nil),
		Timeout: l.config.ResponseTimeout,
	})
}

// Post sends payload JSON-encoded. A nil payload sends no body.
func (l *Live) Post(ctx context.Context, path string, payload Payload) (*rhttp.Response, error) {
	fullURL, payload := l.composer.PostURL(path, payload)

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode POST payload for %s: %w", fullURL, err)
		}
	}

	return l.requester.Do(ctx, &rhttp.Request{
		Method:  methodPost,
		URL:     fullURL,
		Headers: AddJSONHeaders(nil),
		Body:    body,
		Timeout: l.config.ResponseTimeout,
	})
}
