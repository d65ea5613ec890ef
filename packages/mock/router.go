package mock

import (
	"regexp"
	"strings"
)

var paramPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Route represents a mock route
type Route struct {
	Method      string
	PathPattern string
	PathRegex   *regexp.Regexp
	Name        string
	Response    *MockResponse
}

// Label names the route in logs and metrics.
func (r *Route) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.PathPattern
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	StatusCode  int
	ContentType string
	Headers     map[string]string
	Body        string
	// Echo replies with the request body instead of Body
	Echo bool
}

// Router matches incoming requests to routes
type Router struct {
	routes []*Route
}

// NewRouter creates a new router
func NewRouter() *Router {
	return &Router{
		routes: make([]*Route, 0),
	}
}

// AddRoute adds a route to the router
func (r *Router) AddRoute(route *Route) {
	r.routes = append(r.routes, route)
}

// Routes returns the registered routes in match order
func (r *Router) Routes() []*Route {
	return append([]*Route(nil), r.routes...)
}

// Match finds the first route matching the given method and path
func (r *Router) Match(method, path string) (*Route, map[string]string) {
	path = normalizePath(path)

	for _, route := range r.routes {
		if !strings.EqualFold(route.Method, method) {
			continue
		}

		if params := matchPath(route, path); params != nil {
			return route, params
		}
	}

	return nil, nil
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	// Remove trailing slash (except for root)
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// createPathRegex turns /users/{{id}} into ^/users/(?P<id>[^/]+)$, quoting
// everything outside the parameters.
func createPathRegex(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range paramPattern.FindAllStringSubmatchIndex(pattern, -1) {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		name := strings.TrimSpace(pattern[loc[2]:loc[3]])
		b.WriteString("(?P<" + name + ">[^/]+)")
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteString("$")

	regex, err := regexp.Compile(b.String())
	if err != nil {
		// Fallback to literal match
		return regexp.MustCompile("^" + regexp.QuoteMeta(pattern) + "$")
	}
	return regex
}

func matchPath(route *Route, path string) map[string]string {
	if route.PathRegex != nil {
		matches := route.PathRegex.FindStringSubmatch(path)
		if matches != nil {
			params := make(map[string]string)
			names := route.PathRegex.SubexpNames()
			for i, name := range names {
				if i > 0 && name != "" && i < len(matches) {
					params[name] = matches[i]
				}
			}
			return params
		}
	}

	if route.PathPattern == path {
		return make(map[string]string)
	}

	return nil
}
