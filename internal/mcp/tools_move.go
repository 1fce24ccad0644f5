package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/taskboard/internal/board"
)

// MoveTaskInput is the input for move_task.
type MoveTaskInput struct {
	Project string `json:"project"         jsonschema:"project folder name (required)"`
	Task    string `json:"task"            jsonschema:"task ID (required)"`
	To      string `json:"to"              jsonschema:"destination section, e.g. In Progress (required)"`
	Owner   string `json:"owner,omitempty" jsonschema:"owner to record on the moved row"`
	Notes   string `json:"notes,omitempty" jsonschema:"notes to record on the moved row"`
}

// MoveTaskOutput is the output for move_task.
type MoveTaskOutput struct {
	Project string     `json:"project" jsonschema:"project folder name"`
	Task    board.Task `json:"task"    jsonschema:"the task as written to its new section"`
}

func handleMoveTask(repo *board.Repository) mcp.ToolHandlerFor[MoveTaskInput, MoveTaskOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input MoveTaskInput) (*mcp.CallToolResult, MoveTaskOutput, error) {
		if input.Task == "" || input.To == "" {
			return nil, MoveTaskOutput{}, errors.New("task and to are required")
		}
		p, err := locate(repo, input.Project)
		if err != nil {
			return nil, MoveTaskOutput{}, err
		}
		task, err := repo.Move(p, input.Task, input.To, board.MoveOptions{Owner: input.Owner, Notes: input.Notes})
		if err != nil {
			return nil, MoveTaskOutput{}, fmt.Errorf("moving task: %w", err)
		}
		return nil, MoveTaskOutput{Project: p.Name, Task: task}, nil
	}
}
