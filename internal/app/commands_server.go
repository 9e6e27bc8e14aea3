package app

import (
	"github.com/spf13/cobra"

	"github.com/cyp0633/davkit/davclient"
)

const maskedSecret = "********"

func newServerCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage registered servers",
	}
	cmd.AddCommand(newServerAddCmd(opts))
	cmd.AddCommand(newServerListCmd(opts))
	cmd.AddCommand(newServerRemoveCmd(opts))
	return cmd
}

func newServerAddCmd(opts *globalOptions) *cobra.Command {
	var cfg davclient.ServerConfig
	var authType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register or replace a server",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			cfg.AuthType = davclient.AuthType(authType)
			if err := s.store.Put(cfg); err != nil {
				return err
			}
			s.logger.Info("server registered", "name", cfg.Name)
			return s.print(maskConfig(cfg))
		}),
	}
	cmd.Flags().StringVar(&cfg.Name, "name", "", "Unique server name")
	cmd.Flags().StringVar(&cfg.BaseURL, "base-url", "", "Base URL of the DAV server")
	cmd.Flags().StringVar(&authType, "auth-type", string(davclient.AuthBasic), "Authentication: basic|bearer")
	cmd.Flags().StringVar(&cfg.Username, "username", "", "Username for basic authentication")
	cmd.Flags().StringVar(&cfg.Password, "password", "", "Password for basic authentication")
	cmd.Flags().StringVar(&cfg.Token, "token", "", "Token for bearer authentication")
	return cmd
}

func newServerListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered servers",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			configs, err := s.store.List()
			if err != nil {
				return err
			}
			for i := range configs {
				configs[i] = maskConfig(configs[i])
			}
			return s.print(configs)
		}),
	}
}

func newServerRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a registered server",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			if err := s.store.Delete(args[0]); err != nil {
				return err
			}
			return s.print(map[string]string{"removed": args[0]})
		}),
	}
}

func newTestCmd(opts *globalOptions) *cobra.Command {
	var webdav bool

	cmd := &cobra.Command{
		Use:   "test NAME",
		Short: "Check that a registered server answers",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			cfg, err := s.server(args[0])
			if err != nil {
				return err
			}

			var connected bool
			if webdav {
				fwd, err := davclient.NewForwarder(cfg, s.clientOptions()...)
				if err != nil {
					return err
				}
				connected = fwd.TestConnection(cmd.Context())
			} else {
				client, err := davclient.NewClient(cfg, s.clientOptions()...)
				if err != nil {
					return err
				}
				connected = client.TestConnection(cmd.Context())
			}

			return s.print(map[string]any{"server": cfg.Name, "connected": connected})
		}),
	}
	cmd.Flags().BoolVar(&webdav, "webdav", false, "Probe with OPTIONS instead of PROPFIND")
	return cmd
}

func maskConfig(cfg davclient.ServerConfig) davclient.ServerConfig {
	if cfg.Password != "" {
		cfg.Password = maskedSecret
	}
	if cfg.Token != "" {
		cfg.Token = maskedSecret
	}
	return cfg
}
