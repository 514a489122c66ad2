package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alucardeht/constitution-mcp/internal/daemon"
	"github.com/alucardeht/constitution-mcp/internal/mcp"
)

type queryCmd struct {
	use   string
	short string
	tool  string
	// arg names the tool argument filled from the single positional
	// argument. Empty means the command takes none.
	arg string
}

var queryDefs = []queryCmd{
	{use: "preamble", short: "Print the preamble", tool: "constitution_preamble"},
	{use: "article <number>", short: "Print an article in full", tool: "constitution_article", arg: "number"},
	{use: "list", short: "List every article with its title", tool: "constitution_list"},
	{use: "search <keyword>", short: "Search article titles and descriptions", tool: "constitution_search", arg: "keyword"},
	{use: "summary <number>", short: "Print an article's number and title", tool: "constitution_summary", arg: "number"},
	{use: "count", short: "Print the number of articles", tool: "constitution_count"},
	{use: "title <keyword>", short: "Search article titles only", tool: "constitution_search_title", arg: "keyword"},
}

func (a *app) queryCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, len(queryDefs))
	for i, def := range queryDefs {
		cmds[i] = a.newQueryCmd(def)
	}
	return cmds
}

func (a *app) newQueryCmd(def queryCmd) *cobra.Command {
	var socketPath string

	cmd := &cobra.Command{
		Use:   def.use,
		Short: def.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]interface{}{}
			if def.arg != "" {
				params[def.arg] = args[0]
			}

			var (
				text string
				err  error
			)
			if socketPath != "" {
				text, err = callRemote(cmd.Context(), socketPath, def.tool, params)
			} else {
				text, err = a.callLocal(cmd.Context(), def.tool, params)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	if def.arg != "" {
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.Flags().StringVar(&socketPath, "socket", "", "query a running daemon on this socket instead of the local dataset")
	return cmd
}

func (a *app) callLocal(ctx context.Context, tool string, params map[string]interface{}) (string, error) {
	registry, err := a.registry()
	if err != nil {
		return "", err
	}

	input, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	out, err := registry.ExecuteWithTimeout(ctx, tool, input, a.cfg.ToolTimeout)
	if err != nil {
		return "", err
	}
	return mcp.RenderText(out)
}

func callRemote(ctx context.Context, socketPath, tool string, params map[string]interface{}) (string, error) {
	client, err := daemon.Dial(ctx, socketPath)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if _, err := client.Initialize(ctx); err != nil {
		return "", err
	}
	return client.CallTool(ctx, tool, params)
}
