package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is the YAML document a mock server loads routes from:
//
//	routes:
//	  - name: hello
//	    method: GET
//	    path: /v1/testing/hello
//	    status: 200
//	    body: {message: hello tester}
//	  - method: DELETE
//	    path: /v1/testing/goodbye/{{tag}}
//	    status: 204
type Fixture struct {
	Routes []RouteSpec `yaml:"routes"`
}

// RouteSpec describes one route. A non-string Body is served as JSON.
type RouteSpec struct {
	Name        string            `yaml:"name,omitempty"`
	Method      string            `yaml:"method"`
	Path        string            `yaml:"path"`
	Status      int               `yaml:"status,omitempty"`
	ContentType string            `yaml:"content_type,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	Body        any               `yaml:"body,omitempty"`
	Echo        bool              `yaml:"echo,omitempty"`
}

// ParseFixture decodes a YAML fixture document.
func ParseFixture(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// ParseFixtureFile reads and decodes a fixture file.
func ParseFixtureFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFixture(data)
}

func (spec RouteSpec) toRoute() (*Route, error) {
	if spec.Path == "" {
		return nil, fmt.Errorf("route %q: path is required", spec.Name)
	}

	method := strings.ToUpper(spec.Method)
	if method == "" {
		method = http.MethodGet
	}

	resp := &MockResponse{
		StatusCode:  spec.Status,
		ContentType: spec.ContentType,
		Headers:     make(map[string]string, len(spec.Headers)),
		Echo:        spec.Echo,
	}
	for k, v := range spec.Headers {
		resp.Headers[k] = v
	}
	if resp.StatusCode == 0 {
		resp.StatusCode = http.StatusOK
	}

	switch body := spec.Body.(type) {
	case nil:
	case string:
		resp.Body = body
		if resp.ContentType == "" {
			resp.ContentType = "text/plain; charset=utf-8"
		}
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("route %q: body is not JSON-encodable: %w", spec.Name, err)
		}
		resp.Body = string(data)
	}
	if resp.ContentType == "" {
		resp.ContentType = "application/json"
	}

	pattern := normalizePath(spec.Path)
	return &Route{
		Method:      method,
		PathPattern: pattern,
		PathRegex:   createPathRegex(pattern),
		Name:        spec.Name,
		Response:    resp,
	}, nil
}
