package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
)

// JSONOutput is one exchange in machine-readable form
type JSONOutput struct {
	Request  JSONRequest   `json:"request"`
	Response *JSONResponse `json:"response,omitempty"`
	Error    string        `json:"error,omitempty"`
	Time     string        `json:"time"`
}

// JSONRequest represents request details
type JSONRequest struct {
	Method string `json:"method,omitempty"`
	URL    string `json:"url,omitempty"`
}

// JSONResponse represents response details. Body is embedded as JSON when
// the response is JSON and as a string otherwise.
type JSONResponse struct {
	StatusCode int               `json:"statusCode"`
	Status     string            `json:"status"`
	Headers    map[string]string `json:"headers,omitempty"`
	Duration   float64           `json:"duration"`
	Body       any               `json:"body,omitempty"`
}

type JSONFormatter struct {
	writer io.Writer
	now    func() time.Time
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		writer: os.Stdout,
		now:    time.Now,
	}
}

// SetWriter sets the output writer
func (f *JSONFormatter) SetWriter(w io.Writer) {
	f.writer = w
}

func (f *JSONFormatter) FormatResponse(method, url string, resp *rhttp.Response) {
	out := JSONOutput{
		Request: JSONRequest{Method: method, URL: url},
		Response: &JSONResponse{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Headers:    resp.Headers,
			Duration:   float64(resp.DurationMs()),
			Body:       jsonBody(resp),
		},
		Time: f.now().Format(time.RFC3339),
	}
	f.write(out)
}

func (f *JSONFormatter) FormatError(err error) {
	f.write(JSONOutput{
		Error: err.Error(),
		Time:  f.now().Format(time.RFC3339),
	})
}

func (f *JSONFormatter) write(out JSONOutput) {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(out)
}

func jsonBody(resp *rhttp.Response) any {
	if len(resp.Body) == 0 {
		return nil
	}
	if resp.IsJSON() && json.Valid(resp.Body) {
		return json.RawMessage(resp.Body)
	}
	return resp.BodyString()
}
