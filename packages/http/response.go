package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Response is a fully read HTTP response. Transports build it once and hand
// it to the caller without further changes.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

// NewResponse flattens header values to their first entry.
func NewResponse(statusCode int, header http.Header, body []byte, duration time.Duration) *Response {
	headers := make(map[string]string, len(header))
	for k := range header {
		headers[k] = header.Get(k)
	}

	return &Response{
		StatusCode: statusCode,
		Status:     statusText(statusCode),
		Headers:    headers,
		Body:       body,
		Duration:   duration,
	}
}

func statusText(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " " + text
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) BodyJSON() (any, error) {
	var result any
	if err := json.Unmarshal(r.Body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Response) Header(key string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	ct := r.ContentType()
	return strings.Contains(ct, "application/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
