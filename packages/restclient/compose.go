package restclient

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/restharness/packages/logging"
)

const (
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"
	mimeForm          = "application/x-www-form-urlencoded"
)

// BuildBaseURL composes the host URL of a REST API, e.g. "http://example.com:80".
func BuildBaseURL(scheme, hostname string, port int) string {
	return scheme + "://" + hostname + ":" + strconv.Itoa(port)
}

// BuildFullURL concatenates baseURL, relativePath and extra verbatim.
// Duplicate slashes are kept; callers supply well-formed segments.
func BuildFullURL(baseURL, relativePath string, extra ...string) string {
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString(relativePath)
	for _, segment := range extra {
		b.WriteString(segment)
	}
	return b.String()
}

// AddJSONHeaders sets the JSON content type on headers and returns them.
// A nil map is replaced by a new one, so no caller ever shares a default map.
func AddJSONHeaders(headers Headers) Headers {
	if headers == nil {
		headers = Headers{}
	}
	headers[headerContentType] = mimeJSON
	return headers
}

// EncodeQuery form-encodes q with keys in sorted order. Spaces become "+".
func EncodeQuery(q Query) string {
	if len(q) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range q {
		values[k] = queryValues(v)
	}
	return values.Encode()
}

func queryValues(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{val}
	case []string:
		return val
	case []int:
		out := make([]string, len(val))
		for i, n := range val {
			out[i] = strconv.Itoa(n)
		}
		return out
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = fmt.Sprint(item)
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}

// objectKeyText renders a DELETE key as one escaped path segment.
func objectKeyText(objectKey any) string {
	return url.PathEscape(fmt.Sprint(objectKey))
}

// Composer turns relative paths, query strings and payloads into full
// request URLs against one fixed base URL.
type Composer struct {
	baseURL string
	logger  *slog.Logger
}

// NewComposer returns a composer for baseURL. An empty baseURL yields
// relative URLs, which is what in-process transports need.
func NewComposer(baseURL string, logger *slog.Logger) *Composer {
	return &Composer{
		baseURL: baseURL,
		logger:  logging.OrDiscard(logger),
	}
}

func (c *Composer) BaseURL() string {
	return c.baseURL
}

func (c *Composer) FullURL(relativePath string, extra ...string) string {
	return BuildFullURL(c.baseURL, relativePath, extra...)
}

// DeleteURL appends "/<objectKey>" to the full URL of relativePath. The key
// is rendered with fmt.Sprint and path-escaped, so a nil key becomes the
// segment "%3Cnil%3E" and "a/b" stays a single segment.
func (c *Composer) DeleteURL(relativePath string, objectKey any) string {
	fullURL := c.FullURL(relativePath, "/", objectKeyText(objectKey))
	c.logger.Debug("Client DELETE", "url", fullURL)
	return fullURL
}

// GetURL appends the encoded query, if any, to the full URL of relativePath.
func (c *Composer) GetURL(relativePath string, query Query) string {
	fullURL := c.FullURL(relativePath)
	if qs := EncodeQuery(query); qs != "" {
		fullURL += "?" + qs
	}
	c.logger.Debug("Client GET", "url", fullURL)
	return fullURL
}

// PostURL returns the full URL of relativePath together with payload, untouched.
func (c *Composer) PostURL(relativePath string, payload Payload) (string, Payload) {
	fullURL := c.FullURL(relativePath)
	c.logger.Debug("Client POST", "url", fullURL, "payload", payload)
	return fullURL, payload
}

// encodeForm renders payload as an application/x-www-form-urlencoded body.
func encodeForm(payload Payload) []byte {
	return []byte(EncodeQuery(Query(payload)))
}
