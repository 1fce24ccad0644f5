// Package mcp provides a Model Context Protocol server for taskboard.
// It exposes board operations as MCP tools so an agent can find, claim,
// and move tasks without shelling out.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/taskboard/internal/board"
)

// NewServer creates an MCP server with all taskboard tools registered.
func NewServer(version string, repo *board.Repository) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "taskboard",
		Version: version,
	}, nil)
	registerTools(server, repo)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that rewrite a board in
// place without discarding rows.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all taskboard tools to the server.
func registerTools(server *mcp.Server, repo *board.Repository) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List project boards under agents/projects with display names and whether each has a tasks.md.",
		Annotations: readOnlyAnnotations(),
	}, handleListProjects(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List every task on a project board, optionally filtered to one section (Backlog, In Progress, ...).",
		Annotations: readOnlyAnnotations(),
	}, handleListTasks(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "available_tasks",
		Description: "List Backlog or Ready tasks whose dependencies are all Completed, highest priority first.",
		Annotations: readOnlyAnnotations(),
	}, handleAvailableTasks(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "auto_pick",
		Description: "Return the single highest-priority available task on a project board.",
		Annotations: readOnlyAnnotations(),
	}, handleAutoPick(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "collect_ledger",
		Description: "Collect open tasks (Backlog and In Progress) across every project, as shown in OPENTASKS.md.",
		Annotations: readOnlyAnnotations(),
	}, handleCollectLedger(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_task",
		Description: "Move a task row to another section (e.g. In Progress), stamping the start date and owner.",
		Annotations: writeAnnotations(),
	}, handleMoveTask(repo))
}
