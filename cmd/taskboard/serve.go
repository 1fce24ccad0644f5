package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	boardmcp "github.com/gorewood/taskboard/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run taskboard as a Model Context Protocol (MCP) server over stdio.

This exposes the task boards as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "taskboard": {
        "command": "taskboard",
        "args": ["serve"]
      }
    }
  }

Available tools: list_projects, list_tasks, available_tasks, auto_pick,
move_task, collect_ledger`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			server := boardmcp.NewServer(buildVersion(), ws.repo)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
