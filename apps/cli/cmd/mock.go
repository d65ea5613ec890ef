package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/restharness/packages/mock"
)

// WatchDebounceDelay is the debounce delay for file watch events
const WatchDebounceDelay = 300 * time.Millisecond

type mockOptions struct {
	port  int
	delay time.Duration
	watch bool
}

func newMockCmd(opts *rootOptions) *cobra.Command {
	mo := &mockOptions{}

	cmd := &cobra.Command{
		Use:   "mock <file|directory>...",
		Short: "Start a mock server from YAML route fixtures",
		Long: `Start an HTTP mock server that answers from YAML route fixtures.

The mock server:
- Loads routes from .yaml and .yml files (directories are walked)
- Supports path parameters (e.g., /users/{{id}}) substituted into bodies
- Tags every response with an X-Request-Id header
- Serves request counters on /metrics
- Can add artificial delays to simulate network latency

Examples:
  restharness mock routes.yaml
  restharness mock routes.yaml --port 3000 --delay 100ms
  restharness mock ./fixtures/ --watch --verbose`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mo.run(cmd, opts, args)
		},
	}

	// Shadows the persistent target --port.
	cmd.Flags().IntVarP(&mo.port, "port", "p", mock.DefaultPort, "Port to run the mock server on")
	cmd.Flags().DurationVarP(&mo.delay, "delay", "d", 0, "Delay to add to all responses (e.g., 100ms, 1s)")
	cmd.Flags().BoolVarP(&mo.watch, "watch", "w", false, "Reload route files when they change")
	return cmd
}

func (mo *mockOptions) run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	if len(files) == 0 {
		return withExitCode(ExitConfigError, fmt.Errorf("no .yaml or .yml route files found"))
	}

	logger := opts.logger(cmd.ErrOrStderr())
	server := mock.NewServer(
		mock.WithPort(mo.port),
		mock.WithDelay(mo.delay),
		mock.WithLogger(logger),
	)

	if err := server.LoadFiles(files); err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("failed to load files: %w", err))
	}
	if len(server.GetRoutes()) == 0 {
		return withExitCode(ExitConfigError, fmt.Errorf("no routes found in the provided files"))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d routes from %d files\n", len(server.GetRoutes()), len(files))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mo.watch {
		watcher, err := watchFiles(files, args)
		if err != nil {
			return withExitCode(ExitConfigError, err)
		}
		defer watcher.Close()
		go reloadOnChange(ctx, watcher, server, args, logger)
		fmt.Fprintf(cmd.OutOrStdout(), "Watching for changes... (press Ctrl+C to stop)\n")
	}

	if err := server.StartWithContext(ctx); err != nil {
		return withExitCode(ExitNetworkError, err)
	}
	return nil
}

// watchFiles watches every directory holding a route file, plus the
// directories named on the command line.
func watchFiles(files, args []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	watchedDirs := make(map[string]bool)
	add := func(dir string) error {
		if watchedDirs[dir] {
			return nil
		}
		watchedDirs[dir] = true
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	}

	for _, file := range files {
		if err := add(filepath.Dir(file)); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			if err := add(arg); err != nil {
				watcher.Close()
				return nil, err
			}
		}
	}
	return watcher, nil
}

// reloadOnChange swaps the route table after route files settle. A broken
// file keeps the previous routes serving.
func reloadOnChange(ctx context.Context, watcher *fsnotify.Watcher, server *mock.Server, args []string, logger *slog.Logger) {
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if isRouteFile(event.Name) && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
				debounce = time.After(WatchDebounceDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher", "error", err)
		case <-debounce:
			debounce = nil
			files, err := collectFiles(args)
			if err != nil {
				logger.Error("Reload failed", "error", err)
				continue
			}
			if err := server.Reload(files); err != nil {
				logger.Error("Reload failed", "error", err)
			}
		}
	}
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && isRouteFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if isRouteFile(arg) {
			files = append(files, arg)
		}
	}

	return files, nil
}

func isRouteFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
