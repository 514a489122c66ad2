package main

import (
	"github.com/spf13/cobra"

	"github.com/alucardeht/constitution-mcp/internal/daemon"
	"github.com/alucardeht/constitution-mcp/internal/mcp"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := a.registry()
			if err != nil {
				return err
			}
			server := mcp.NewServer(registry, a.cfg.ToolTimeout)
			return server.ProcessStream(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (a *app) daemonCmd() *cobra.Command {
	var socketPath, metricsAddr string

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Serve MCP on a unix socket until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if socketPath != "" {
				a.cfg.SocketPath = socketPath
			}
			if metricsAddr != "" {
				a.cfg.MetricsAddr = metricsAddr
			}
			if err := a.cfg.EnsureDirectories(); err != nil {
				return err
			}

			registry, err := a.registry()
			if err != nil {
				return err
			}

			d := daemon.New(registry, daemon.Options{
				SocketPath:     a.cfg.SocketPath,
				MaxConnections: a.cfg.MaxConnections,
				ToolTimeout:    a.cfg.ToolTimeout,
				PIDFile:        daemon.PIDPath(a.cfg.SocketPath),
				MetricsAddr:    a.cfg.MetricsAddr,
			})
			return d.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&socketPath, "socket", "", "socket path (default from config)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}
