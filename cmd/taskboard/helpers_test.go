package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const webBuilderBoard = `# Web Builder Tasks

## Backlog

| ID | Title | Description | Priority | Owner | Effort | Dependencies | Notes |
| --- | --- | --- | --- | --- | --- | --- | --- |
| WBR-001 | Renderer | Build renderer | High |  | 3d | - |  |
| WBR-002 | Input | Input handling | Critical | Ana | 1d | WBR-003 |  |
| WBR-004 | Audio | Sound | Low |  | 2d | WBR-009 |  |

## In Progress

| ID | Title | Description | Priority | Owner | Effort | Dependencies | Notes |
| --- | --- | --- | --- | --- | --- | --- | --- |

## Completed

| ID | Title | Description | Priority | Owner | Effort | Dependencies | Notes |
| --- | --- | --- | --- | --- | --- | --- | --- |
| WBR-003 | Setup | Scaffold | Medium | Bo | 1d |  | done |
`

const webBuilderReadme = `# Web Builder

A browser-based level editor.
`

// cliResult captures one command invocation.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// decode parses stdout as a JSON object.
func (r cliResult) decode(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(r.stdout), &out); err != nil {
		t.Fatalf("stdout is not JSON: %v\nstdout: %s\nstderr: %s", err, r.stdout, r.stderr)
	}
	return out
}

// newBoardRoot writes a board root with a web-builder project and an empty
// docs project, and isolates global config.
func newBoardRoot(t *testing.T) string {
	t.Helper()
	t.Setenv("TASKBOARD_CONFIG_HOME", t.TempDir())
	t.Setenv("TASKBOARD_ROOT", "")
	t.Setenv("TASKBOARD_LOG_LEVEL", "")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "agents", "projects", "web-builder", "tasks.md"), webBuilderBoard)
	writeFile(t, filepath.Join(root, "agents", "projects", "web-builder", "README.md"), webBuilderReadme)
	if err := os.MkdirAll(filepath.Join(root, "agents", "projects", "docs"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

// runCLI executes the root command against root with stdin as input.
func runCLI(t *testing.T, root, stdin string, args ...string) cliResult {
	t.Helper()
	cmd := newRootCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--root", root}, args...))

	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// boardSection returns the status section a task row sits under.
func boardSection(t *testing.T, root, id string) string {
	t.Helper()
	section := ""
	for _, line := range strings.Split(readFile(t, filepath.Join(root, "agents", "projects", "web-builder", "tasks.md")), "\n") {
		if rest, ok := strings.CutPrefix(line, "## "); ok {
			section = strings.TrimSpace(rest)
		}
		if strings.HasPrefix(line, "| "+id+" ") {
			return section
		}
	}
	return ""
}

func taskIDs(t *testing.T, v any) []string {
	t.Helper()
	list, ok := v.([]any)
	if !ok {
		t.Fatalf("tasks = %T, want array", v)
	}
	ids := make([]string, 0, len(list))
	for _, item := range list {
		ids = append(ids, item.(map[string]any)["id"].(string))
	}
	return ids
}
