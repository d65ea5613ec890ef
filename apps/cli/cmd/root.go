package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/restharness/packages/core/config"
	rhttp "github.com/abdul-hamid-achik/restharness/packages/http"
	"github.com/abdul-hamid-achik/restharness/packages/logging"
	"github.com/abdul-hamid-achik/restharness/packages/output"
	"github.com/abdul-hamid-achik/restharness/packages/restclient"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	scheme     string
	host       string
	port       int
	timeout    time.Duration
	verbose    bool
	noColor    bool
	output     string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "restharness",
		Short: "Compose and send REST requests, or serve mock routes.",
		Long: `restharness sends REST requests the way its test harness composes them:
the same base URL, query encoding and JSON headers your test suites use.
It can also serve YAML route fixtures as a mock API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", os.Getenv("RESTHARNESS_CONFIG"), "Path to config file (env: RESTHARNESS_CONFIG)")
	flags.StringVar(&opts.scheme, "scheme", "", "Target scheme: http or https")
	flags.StringVar(&opts.host, "host", "", "Target hostname")
	flags.IntVar(&opts.port, "port", 0, "Target port")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Response timeout (e.g., 10s, 1m)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print response headers and debug logs")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.StringVarP(&opts.output, "output", "o", "console", "Output format: console, json")

	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))
	rootCmd.AddCommand(newPostCmd(opts))
	rootCmd.AddCommand(newMockCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI and exits with the code matching its outcome.
func Execute(v, bt string) {
	version = v
	buildTime = bt

	err := NewRootCmd().Execute()
	if err != nil && !isReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(ExitCode(err))
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	return logging.Setup(w, o.verbose)
}

func (o *rootOptions) formatter(w io.Writer) (output.Formatter, error) {
	switch strings.ToLower(o.output) {
	case "", "console":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(o.verbose),
			output.WithNoColor(o.noColor),
		), nil
	case "json":
		f := output.NewJSONFormatter()
		f.SetWriter(w)
		return f, nil
	default:
		return nil, withExitCode(ExitUsageError, fmt.Errorf("unknown output format %q", o.output))
	}
}

// loadConfig resolves config file, environment and flags, in rising
// precedence.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}

	override := &config.Config{}
	flags := cmd.Flags()
	if flags.Changed("scheme") {
		override.Scheme = o.scheme
	}
	if flags.Changed("host") {
		override.Hostname = o.host
	}
	if flags.Changed("verbose") {
		override.Verbose = config.BoolPtr(o.verbose)
	}
	if flags.Changed("no-color") {
		override.NoColor = config.BoolPtr(o.noColor)
	}
	cfg = cfg.Merge(override)
	// Merge skips zero values; an explicit zero must still fail Validate.
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("timeout") {
		cfg.ResponseTimeout = o.timeout
	}

	o.verbose = cfg.GetVerbose()
	o.noColor = cfg.GetNoColor()

	if err := cfg.Validate(); err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	return cfg, nil
}

// newLiveClient builds the live transport for cfg.
func (o *rootOptions) newLiveClient(cfg *config.Config, logger *slog.Logger) (*restclient.Live, error) {
	client, err := restclient.NewLive(cfg.Hostname,
		restclient.WithConfig(cfg.ClientConfig()),
		restclient.WithLogger(logger),
		restclient.WithRequester(rhttp.NewClient(cfg.HTTPOptions()...)),
	)
	if err != nil {
		return nil, withExitCode(ExitConfigError, err)
	}
	return client, nil
}
