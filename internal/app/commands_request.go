package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cyp0633/davkit/davclient"
)

func newRequestCmd(opts *globalOptions) *cobra.Command {
	var headers []string
	var body, depth string

	cmd := &cobra.Command{
		Use:   "request NAME METHOD PATH",
		Short: "Send a raw WebDAV request and print the response, whatever its status",
		Args:  cobra.ExactArgs(3),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			header, err := parseHeaders(headers)
			if err != nil {
				return err
			}
			cfg, err := s.server(args[0])
			if err != nil {
				return err
			}
			fwd, err := davclient.NewForwarder(cfg, s.clientOptions()...)
			if err != nil {
				return err
			}

			resp, err := fwd.Forward(cmd.Context(), davclient.Request{
				Method: strings.ToUpper(args[1]),
				Path:   args[2],
				Header: header,
				Body:   body,
				Depth:  depth,
			})
			if err != nil {
				return err
			}
			return s.print(resp)
		}),
	}
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Request header as Key=Value, repeatable")
	cmd.Flags().StringVar(&body, "body", "", "Request body")
	cmd.Flags().StringVar(&depth, "depth", "", "Depth for PROPFIND: 0|1|infinity")
	return cmd
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var depth string

	cmd := &cobra.Command{
		Use:   "ls NAME PATH",
		Short: "List the resources of a collection",
		Args:  cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, s *session, args []string) error {
			cfg, err := s.server(args[0])
			if err != nil {
				return err
			}
			client, err := davclient.NewClient(cfg, s.clientOptions()...)
			if err != nil {
				return err
			}
			resources, err := client.ListResources(cmd.Context(), args[1], depth)
			if err != nil {
				return err
			}
			return s.print(resources)
		}),
	}
	cmd.Flags().StringVar(&depth, "depth", davclient.DepthOne, "PROPFIND depth: 0|1|infinity")
	return cmd
}

func parseHeaders(values []string) (map[string]string, error) {
	header := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q, want Key=Value", v)
		}
		header[key] = value
	}
	return header, nil
}
