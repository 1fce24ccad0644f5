package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/config"
)

const webTasks = `# Web

## Backlog

| ID | Title | Description | Priority | Owner | Effort | Dependencies | Notes |
| --- | --- | --- | --- | --- | --- | --- | --- |
| WBR-001 | Renderer | Build renderer | Low |  | 3d | - |  |
| WBR-002 | Input | Keys | High |  | 1d | WBR-003 |  |
| WBR-004 | Audio | Sound | Critical |  | 2d | WBR-009 |  |

## In Progress

| ID | Title | Description | Priority | Owner | Effort | Dependencies | Notes |
| --- | --- | --- | --- | --- | --- | --- | --- |

## Completed

| ID | Title | Description | Priority | Owner | Effort | Dependencies | Notes |
| --- | --- | --- | --- | --- | --- | --- | --- |
| WBR-003 | Setup | Scaffold | Medium | Bo | 1d |  | done |
`

// --- Test helpers ---

func makeTestRepo(t *testing.T) *board.Repository {
	t.Helper()
	cfg := config.DefaultConfig(t.TempDir())
	dir := filepath.Join(cfg.ProjectsDir(), "web-builder")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, board.TasksFileName), []byte(webTasks), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.ProjectsDir(), "empty-idea"), 0o755); err != nil {
		t.Fatal(err)
	}
	return board.NewRepository(cfg, nil)
}

func taskIDs(tasks []board.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

// --- Handler tests ---

func TestHandleListProjects(t *testing.T) {
	repo := makeTestRepo(t)
	_, out, err := handleListProjects(repo)(context.Background(), &mcp.CallToolRequest{}, ListProjectsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Projects) != 2 {
		t.Fatalf("len(Projects) = %d, want 2", len(out.Projects))
	}
	if out.Projects[0].Name != "empty-idea" || out.Projects[0].HasTasksFile {
		t.Errorf("Projects[0] = %+v", out.Projects[0])
	}
	if out.Projects[1].DisplayName != "Web Builder" || !out.Projects[1].HasTasksFile {
		t.Errorf("Projects[1] = %+v", out.Projects[1])
	}
}

func TestHandleListTasks(t *testing.T) {
	repo := makeTestRepo(t)
	handler := handleListTasks(repo)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListTasksInput{Project: "web-builder"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 4 {
		t.Errorf("Count = %d, want 4", out.Count)
	}

	_, out, err = handler(context.Background(), &mcp.CallToolRequest{}, ListTasksInput{Project: "web-builder", Section: "Completed"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 1 || out.Tasks[0].ID != "WBR-003" {
		t.Errorf("Completed tasks = %v", taskIDs(out.Tasks))
	}
}

func TestHandleListTasks_Errors(t *testing.T) {
	repo := makeTestRepo(t)
	handler := handleListTasks(repo)

	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ListTasksInput{}); err == nil {
		t.Error("expected error for missing project")
	}
	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ListTasksInput{Project: "nope"})
	if !errors.Is(err, board.ErrProjectNotFound) {
		t.Errorf("error = %v, want ErrProjectNotFound", err)
	}
	_, _, err = handler(context.Background(), &mcp.CallToolRequest{}, ListTasksInput{Project: "empty-idea"})
	if !errors.Is(err, board.ErrTasksFileMissing) {
		t.Errorf("error = %v, want ErrTasksFileMissing", err)
	}
}

func TestHandleAvailableTasks(t *testing.T) {
	repo := makeTestRepo(t)
	_, out, err := handleAvailableTasks(repo)(context.Background(), &mcp.CallToolRequest{}, ProjectInput{Project: "web-builder"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ids := taskIDs(out.Tasks)
	if len(ids) != 2 || ids[0] != "WBR-002" || ids[1] != "WBR-001" {
		t.Errorf("available = %v, want [WBR-002 WBR-001]", ids)
	}
}

func TestHandleAutoPick(t *testing.T) {
	repo := makeTestRepo(t)
	_, out, err := handleAutoPick(repo)(context.Background(), &mcp.CallToolRequest{}, ProjectInput{Project: "web-builder"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Found || out.Task.ID != "WBR-002" {
		t.Errorf("auto_pick = %+v", out)
	}
}

func TestHandleMoveTask(t *testing.T) {
	repo := makeTestRepo(t)
	handler := handleMoveTask(repo)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, MoveTaskInput{
		Project: "web-builder",
		Task:    "WBR-001",
		To:      "In Progress",
		Owner:   "Gemini",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Task.Status != "In Progress" || out.Task.Owner != "Gemini" {
		t.Errorf("moved task = %+v", out.Task)
	}

	p, err := repo.Locate("web-builder")
	if err != nil {
		t.Fatal(err)
	}
	inProgress, err := repo.ListSections(p, []string{"In Progress"})
	if err != nil {
		t.Fatal(err)
	}
	if len(inProgress) != 1 || inProgress[0].ID != "WBR-001" {
		t.Errorf("In Progress = %v", taskIDs(inProgress))
	}

	_, _, err = handler(context.Background(), &mcp.CallToolRequest{}, MoveTaskInput{Project: "web-builder", Task: "WBR-404", To: "Completed"})
	if !errors.Is(err, board.ErrTaskNotFound) {
		t.Errorf("error = %v, want ErrTaskNotFound", err)
	}
	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, MoveTaskInput{Project: "web-builder"}); err == nil {
		t.Error("expected error for missing task and to")
	}
}

func TestHandleCollectLedger(t *testing.T) {
	repo := makeTestRepo(t)
	_, out, err := handleCollectLedger(repo)(context.Background(), &mcp.CallToolRequest{}, CollectLedgerInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Count != 3 {
		t.Errorf("Count = %d, want 3", out.Count)
	}
	for _, e := range out.Entries {
		if e.Project != "Web Builder" || e.Status != "Backlog" {
			t.Errorf("entry = %+v", e)
		}
	}
}

// --- Server tests ---

func TestNewServer_RegistersTools(t *testing.T) {
	server := NewServer("test-version", makeTestRepo(t))
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}
