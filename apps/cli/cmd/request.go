package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
	"github.com/abdul-hamid-achik/restharness/packages/restclient"
)

// request is one verb: url composes what call will send, for display only.
type request struct {
	method string
	url    func(c *restclient.Composer) string
	call   func(ctx context.Context, client *restclient.Live) (*rhttp.Response, error)
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var queryFlags []string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Send a GET request",
		Long: `Send a GET request to the configured target.

Examples:
  restharness get /v1/testing/hello --host api.example.com
  restharness get /v1/test/object -q count=5 -q "name=hello world"
  restharness get /v1/items -q tag=a -q tag=b`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(queryFlags)
			if err != nil {
				return err
			}
			return opts.send(cmd, request{
				method: http.MethodGet,
				url:    func(c *restclient.Composer) string { return c.GetURL(args[0], query) },
				call: func(ctx context.Context, client *restclient.Live) (*rhttp.Response, error) {
					return client.Get(ctx, args[0], query)
				},
			})
		},
	}
	cmd.Flags().StringArrayVarP(&queryFlags, "query", "q", nil, "Query parameter as key=value (repeatable)")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path> <key>",
		Short: "Send a DELETE request for one object",
		Long: `Send a DELETE request for the object key appended to path.

Examples:
  restharness delete /v1/test/object 1234`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.send(cmd, request{
				method: http.MethodDelete,
				url:    func(c *restclient.Composer) string { return c.DeleteURL(args[0], args[1]) },
				call: func(ctx context.Context, client *restclient.Live) (*rhttp.Response, error) {
					return client.Delete(ctx, args[0], args[1])
				},
			})
		},
	}
}

func newPostCmd(opts *rootOptions) *cobra.Command {
	var dataFlag string

	cmd := &cobra.Command{
		Use:   "post <path>",
		Short: "Send a POST request with a JSON payload",
		Long: `Send a POST request with a JSON object payload.

The payload is read from --data, or from a file when the value starts with @.

Examples:
  restharness post /v1/testing/hello -d '{"message": "test in-out"}'
  restharness post /v1/testing/hello -d @payload.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(dataFlag)
			if err != nil {
				return err
			}
			return opts.send(cmd, request{
				method: http.MethodPost,
				url: func(c *restclient.Composer) string {
					url, _ := c.PostURL(args[0], payload)
					return url
				},
				call: func(ctx context.Context, client *restclient.Live) (*rhttp.Response, error) {
					return client.Post(ctx, args[0], payload)
				},
			})
		},
	}
	cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "JSON object payload, or @file to read it from a file")
	return cmd
}

func (o *rootOptions) send(cmd *cobra.Command, req request) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	formatter, err := o.formatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger := o.logger(cmd.ErrOrStderr())

	client, err := o.newLiveClient(cfg, logger)
	if err != nil {
		return err
	}

	// The client logs its own composition; the display copy stays quiet.
	url := req.url(restclient.NewComposer(client.Config().BaseURL(), nil))

	resp, err := req.call(cmd.Context(), client)
	if err != nil {
		formatter.FormatError(err)
		return reportedError(ExitNetworkError, err)
	}

	formatter.FormatResponse(req.method, url, resp)
	if !resp.IsSuccess() {
		return withExitCode(ExitFailure, fmt.Errorf("%s %s: %s", req.method, url, resp.Status))
	}
	return nil
}

// parseQuery turns key=value flags into a Query. Repeated keys collect
// into a slice, which encodes as a repeated parameter.
func parseQuery(pairs []string) (restclient.Query, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	query := restclient.Query{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, withExitCode(ExitUsageError, fmt.Errorf("invalid query parameter %q (expected key=value)", pair))
		}

		switch existing := query[key].(type) {
		case nil:
			query[key] = value
		case string:
			query[key] = []string{existing, value}
		case []string:
			query[key] = append(existing, value)
		}
	}
	return query, nil
}

// parsePayload decodes a JSON object from data or from the file named by
// "@path". An empty value sends no payload.
func parsePayload(data string) (restclient.Payload, error) {
	if data == "" {
		return nil, nil
	}

	raw := []byte(data)
	if strings.HasPrefix(data, "@") {
		content, err := os.ReadFile(strings.TrimPrefix(data, "@"))
		if err != nil {
			return nil, withExitCode(ExitUsageError, fmt.Errorf("failed to read payload file: %w", err))
		}
		raw = content
	}

	var payload restclient.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, withExitCode(ExitUsageError, fmt.Errorf("payload must be a JSON object: %w", err))
	}
	return payload, nil
}
