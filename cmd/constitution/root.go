package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alucardeht/constitution-mcp/internal/config"
	"github.com/alucardeht/constitution-mcp/internal/logger"
	"github.com/alucardeht/constitution-mcp/internal/tools"
	"github.com/alucardeht/constitution-mcp/internal/tools/articles"
	"github.com/alucardeht/constitution-mcp/pkg/constitution"
	"github.com/alucardeht/constitution-mcp/pkg/version"
)

// app holds state shared by every subcommand after flag parsing.
type app struct {
	configPath string
	logLevel   string
	dataDir    string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "constitution",
		Short: "Query the Constitution of India",
		Long: `constitution answers questions about the Constitution of India: the
preamble, individual articles, summaries and keyword searches.

Run "constitution serve" to expose the same queries as MCP tools over stdio,
or "constitution daemon" to serve them on a unix socket.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config file (default "+config.DefaultPath()+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.dataDir, "data-dir", "", "load articles from this directory instead of the embedded dataset")

	root.AddCommand(
		a.serveCmd(),
		a.daemonCmd(),
		versionCmd(),
	)
	root.AddCommand(a.queryCmds()...)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.Init(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	a.cfg = cfg
	return nil
}

func (a *app) registry() (*tools.Registry, error) {
	ds, err := a.cfg.OpenDataset()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return articles.NewRegistry(constitution.New(ds))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (MCP %s)\n", version.Name, version.Version, version.ProtocolVersion)
			fmt.Fprintf(out, "Author: %s\nLicense: %s\n", version.Author, version.License)
		},
	}
}
