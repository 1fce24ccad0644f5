package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/ledger"
)

// --- Shared types ---

// ProjectInput names a project board.
type ProjectInput struct {
	Project string `json:"project" jsonschema:"project folder name under agents/projects"`
}

// TasksOutput is a list of tasks from one board.
type TasksOutput struct {
	Project string       `json:"project" jsonschema:"project folder name"`
	Count   int          `json:"count"   jsonschema:"number of tasks returned"`
	Tasks   []board.Task `json:"tasks"   jsonschema:"tasks in board order or priority order"`
}

func locate(repo *board.Repository, name string) (*board.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("project is required")
	}
	return repo.Locate(name)
}

// --- list_projects ---

// ListProjectsInput is the input for list_projects (no parameters).
type ListProjectsInput struct{}

// ProjectSummary describes one project folder.
type ProjectSummary struct {
	Name         string `json:"name"           jsonschema:"project folder name"`
	DisplayName  string `json:"display_name"   jsonschema:"README heading or title-cased folder name"`
	HasTasksFile bool   `json:"has_tasks_file" jsonschema:"whether tasks.md exists"`
}

// ListProjectsOutput is the output for list_projects.
type ListProjectsOutput struct {
	Projects []ProjectSummary `json:"projects" jsonschema:"project folders in name order"`
}

func handleListProjects(repo *board.Repository) mcp.ToolHandlerFor[ListProjectsInput, ListProjectsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
		projects, err := repo.Projects()
		if err != nil {
			return nil, ListProjectsOutput{}, fmt.Errorf("listing projects: %w", err)
		}
		out := ListProjectsOutput{Projects: make([]ProjectSummary, 0, len(projects))}
		for _, p := range projects {
			out.Projects = append(out.Projects, ProjectSummary{
				Name:         p.Name,
				DisplayName:  p.DisplayName,
				HasTasksFile: p.HasTasksFile(),
			})
		}
		return nil, out, nil
	}
}

// --- list_tasks ---

// ListTasksInput is the input for list_tasks.
type ListTasksInput struct {
	Project string `json:"project"           jsonschema:"project folder name under agents/projects"`
	Section string `json:"section,omitempty" jsonschema:"only tasks in this section"`
}

func handleListTasks(repo *board.Repository) mcp.ToolHandlerFor[ListTasksInput, TasksOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, TasksOutput, error) {
		p, err := locate(repo, input.Project)
		if err != nil {
			return nil, TasksOutput{}, err
		}
		var tasks []board.Task
		if input.Section != "" {
			tasks, err = repo.ListSections(p, []string{input.Section})
		} else {
			tasks, err = repo.ListTasks(p)
		}
		if err != nil {
			return nil, TasksOutput{}, fmt.Errorf("listing tasks: %w", err)
		}
		return nil, TasksOutput{Project: p.Name, Count: len(tasks), Tasks: tasks}, nil
	}
}

// --- available_tasks ---

func handleAvailableTasks(repo *board.Repository) mcp.ToolHandlerFor[ProjectInput, TasksOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ProjectInput) (*mcp.CallToolResult, TasksOutput, error) {
		p, err := locate(repo, input.Project)
		if err != nil {
			return nil, TasksOutput{}, err
		}
		tasks, err := repo.ListTasks(p)
		if err != nil {
			return nil, TasksOutput{}, fmt.Errorf("listing tasks: %w", err)
		}
		available := board.Prioritize(board.Available(tasks))
		return nil, TasksOutput{Project: p.Name, Count: len(available), Tasks: available}, nil
	}
}

// --- auto_pick ---

// AutoPickOutput is the output for auto_pick.
type AutoPickOutput struct {
	Project string      `json:"project"        jsonschema:"project folder name"`
	Found   bool        `json:"found"          jsonschema:"whether any task is available"`
	Task    *board.Task `json:"task,omitempty" jsonschema:"the picked task"`
}

func handleAutoPick(repo *board.Repository) mcp.ToolHandlerFor[ProjectInput, AutoPickOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ProjectInput) (*mcp.CallToolResult, AutoPickOutput, error) {
		p, err := locate(repo, input.Project)
		if err != nil {
			return nil, AutoPickOutput{}, err
		}
		tasks, err := repo.ListTasks(p)
		if err != nil {
			return nil, AutoPickOutput{}, fmt.Errorf("listing tasks: %w", err)
		}
		out := AutoPickOutput{Project: p.Name}
		if task, ok := board.AutoPick(tasks); ok {
			out.Found = true
			out.Task = &task
		}
		return nil, out, nil
	}
}

// --- collect_ledger ---

// CollectLedgerInput is the input for collect_ledger (no parameters).
type CollectLedgerInput struct{}

// CollectLedgerOutput is the output for collect_ledger.
type CollectLedgerOutput struct {
	Count   int            `json:"count"   jsonschema:"number of open tasks"`
	Entries []ledger.Entry `json:"entries" jsonschema:"open tasks sorted by project, status, id"`
}

func handleCollectLedger(repo *board.Repository) mcp.ToolHandlerFor[CollectLedgerInput, CollectLedgerOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ CollectLedgerInput) (*mcp.CallToolResult, CollectLedgerOutput, error) {
		entries, err := ledger.Collect(repo)
		if err != nil {
			return nil, CollectLedgerOutput{}, fmt.Errorf("collecting ledger: %w", err)
		}
		return nil, CollectLedgerOutput{Count: len(entries), Entries: entries}, nil
	}
}
