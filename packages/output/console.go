package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
)

// Formatter renders one exchange or a failure for the CLI.
type Formatter interface {
	FormatResponse(method, url string, resp *rhttp.Response)
	FormatError(err error)
}

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

// WithVerbose also prints response headers
func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatResponse prints a status line followed by the body. JSON bodies
// are indented.
func (f *ConsoleFormatter) FormatResponse(method, url string, resp *rhttp.Response) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s %s %s\n",
		bold(method), url, statusColor(resp.StatusCode)(resp.Status), cyan(fmt.Sprintf("(%dms)", resp.DurationMs())))

	if f.verbose {
		keys := make([]string, 0, len(resp.Headers))
		for k := range resp.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(f.writer, "%s: %s\n", cyan(k), resp.Headers[k])
		}
	}

	if len(resp.Body) == 0 {
		return
	}
	fmt.Fprintf(f.writer, "\n%s\n", formatBody(resp))
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}

func statusColor(code int) func(a ...any) string {
	switch {
	case code >= 200 && code < 300:
		return color.New(color.FgGreen).SprintFunc()
	case code >= 300 && code < 400:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgRed).SprintFunc()
	}
}

func formatBody(resp *rhttp.Response) string {
	if resp.IsJSON() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, resp.Body, "", "  "); err == nil {
			return buf.String()
		}
	}
	return resp.BodyString()
}
