package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/cyp0633/davkit/davclient"
	"github.com/cyp0633/davkit/internal/httpclient"
	"github.com/cyp0633/davkit/internal/registry"
)

func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "davctl: %v\n", err)
		return 1
	}
	return 0
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&globalOptions{})
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "davctl",
		Short:         "Talk to CalDAV, CardDAV and WebDAV servers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       BuildVersionString(),
	}
	root.SetVersionTemplate("davctl {{.Version}}\n")

	root.PersistentFlags().StringVar(&opts.Config, "config", "", "Config file path")
	root.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "Directory of the server registry")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	root.PersistentFlags().DurationVar(&opts.Timeout, "timeout", defaultTimeout, "Per-request timeout")

	root.AddCommand(newServerCmd(opts))
	root.AddCommand(newTestCmd(opts))
	root.AddCommand(newCalendarsCmd(opts))
	root.AddCommand(newEventsCmd(opts))
	root.AddCommand(newAddressBooksCmd(opts))
	root.AddCommand(newContactsCmd(opts))
	root.AddCommand(newRequestCmd(opts))
	root.AddCommand(newListCmd(opts))

	return root
}

// session holds what a single command invocation needs: the registry, a
// logger and the shared HTTP client.
type session struct {
	store      *registry.Store
	logger     *slog.Logger
	httpClient *http.Client
	out        io.Writer
}

func openSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	resolved, err := resolveGlobalOptions(cmd, opts)
	if err != nil {
		return nil, err
	}
	level, err := parseLogLevel(resolved.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	store, err := registry.Open(resolved.DataDir)
	if err != nil {
		return nil, err
	}
	logger.Debug("session opened", "data_dir", resolved.DataDir, "config", resolved.Config, "timeout", resolved.Timeout)

	return &session{
		store:      store,
		logger:     logger,
		httpClient: httpclient.New(nil, resolved.Timeout, logger),
		out:        cmd.OutOrStdout(),
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close registry", "error", err)
	}
}

func (s *session) server(name string) (davclient.ServerConfig, error) {
	return s.store.Get(name)
}

func (s *session) clientOptions() []davclient.Option {
	return []davclient.Option{
		davclient.WithHTTPClient(s.httpClient),
		davclient.WithLogger(s.logger),
	}
}

func (s *session) print(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withSession wraps a command body so the registry is opened and closed
// around it.
func withSession(opts *globalOptions, run func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, opts)
		if err != nil {
			return err
		}
		defer s.Close()
		return run(cmd, s, args)
	}
}
