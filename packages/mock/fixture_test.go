package mock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloFixture = `
routes:
  - name: hello
    method: get
    path: /v1/testing/hello
    body:
      message: hello tester
  - name: echo
    method: POST
    path: /v1/testing/hello
    status: 201
    echo: true
  - method: DELETE
    path: /v1/testing/goodbye/{{tag}}
    status: 204
  - name: plain
    path: /v1/testing/plain/{{who}}
    headers:
      X-Fixture: plain
    body: "hi {{who}}"
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFixture(t *testing.T) {
	fixture, err := ParseFixture([]byte(helloFixture))

	require.NoError(t, err)
	require.Len(t, fixture.Routes, 4)
	assert.Equal(t, "hello", fixture.Routes[0].Name)
	assert.Equal(t, 201, fixture.Routes[1].Status)
	assert.True(t, fixture.Routes[1].Echo)
	assert.Equal(t, "/v1/testing/goodbye/{{tag}}", fixture.Routes[2].Path)
}

func TestParseFixture_Invalid(t *testing.T) {
	_, err := ParseFixture([]byte("routes: [unclosed"))

	assert.Error(t, err)
}

func TestRouteSpec_Defaults(t *testing.T) {
	route, err := RouteSpec{Path: "hello/"}.toRoute()

	require.NoError(t, err)
	assert.Equal(t, "GET", route.Method)
	assert.Equal(t, "/hello", route.PathPattern)
	assert.Equal(t, 200, route.Response.StatusCode)
	assert.Equal(t, "application/json", route.Response.ContentType)
	assert.Empty(t, route.Response.Body)
}

func TestRouteSpec_Bodies(t *testing.T) {
	fixture, err := ParseFixture([]byte(helloFixture))
	require.NoError(t, err)

	jsonRoute, err := fixture.Routes[0].toRoute()
	require.NoError(t, err)
	assert.Equal(t, "GET", jsonRoute.Method)
	assert.JSONEq(t, `{"message": "hello tester"}`, jsonRoute.Response.Body)
	assert.Equal(t, "application/json", jsonRoute.Response.ContentType)

	textRoute, err := fixture.Routes[3].toRoute()
	require.NoError(t, err)
	assert.Equal(t, "hi {{who}}", textRoute.Response.Body)
	assert.Equal(t, "text/plain; charset=utf-8", textRoute.Response.ContentType)
	assert.Equal(t, "plain", textRoute.Response.Headers["X-Fixture"])
}

func TestRouteSpec_MissingPath(t *testing.T) {
	_, err := RouteSpec{Name: "broken"}.toRoute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}

func TestParseFixtureFile_NotFound(t *testing.T) {
	_, err := ParseFixtureFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}
