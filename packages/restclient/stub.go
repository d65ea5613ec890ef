package restclient

import (
	"context"
	"net/http"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
)

const (
	methodDelete = http.MethodDelete
	methodGet    = http.MethodGet
	methodPost   = http.MethodPost
)

// Stub composes requests like every other transport and then reports them
// as not implemented. It stands in where no concrete transport was chosen.
type Stub struct {
	config   Config
	composer *Composer
}

var _ Client = (*Stub)(nil)

func NewStub(hostname string, opts ...Option) (*Stub, error) {
	o := newOptions(hostname, opts)
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	return &Stub{
		config:   o.config,
		composer: NewComposer(o.config.BaseURL(), o.logger),
	}, nil
}

func (s *Stub) Config() Config {
	return s.config
}

func (s *Stub) Composer() *Composer {
	return s.composer
}

func (s *Stub) Delete(ctx context.Context, path string, objectKey any) (*rhttp.Response, error) {
	fullURL := s.composer.DeleteURL(path, objectKey)
	return nil, &NotImplementedError{Method: methodDelete, URL: fullURL}
}

func (s *Stub) Get(ctx context.Context, path string, query Query) (*rhttp.Response, error) {
	fullURL := s.composer.GetURL(path, query)
	return nil, &NotImplementedError{Method: methodGet, URL: fullURL}
}

func (s *Stub) Post(ctx context.Context, path string, payload Payload) (*rhttp.Response, error) {
	fullURL, payload := s.composer.PostURL(path, payload)
	return nil, &NotImplementedError{Method: methodPost, URL: fullURL, Payload: payload}
}
