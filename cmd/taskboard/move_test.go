package main

import (
	"strings"
	"testing"

	"github.com/gorewood/taskboard/internal/output"
)

func TestMove(t *testing.T) {
	root := newBoardRoot(t)

	res := runCLI(t, root, "", "--json", "move", "-p", "web-builder", "-t", "WBR-001", "--to", "in progress", "--owner", "Nova")
	if res.err != nil {
		t.Fatalf("move error = %v\n%s", res.err, res.stdout)
	}
	task := res.decode(t)["task"].(map[string]any)
	if task["status"] != "In Progress" || task["owner"] != "Nova" {
		t.Errorf("task = %v", task)
	}
	if got := boardSection(t, root, "WBR-001"); got != "In Progress" {
		t.Errorf("WBR-001 section = %q, want In Progress", got)
	}
}

func TestMove_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing project", args: []string{"-t", "WBR-001", "--to", "Completed"}, want: "--project is required"},
		{name: "unknown task", args: []string{"-p", "web-builder", "-t", "WBR-404", "--to", "Completed"}, want: "task not found"},
		{name: "unknown section", args: []string{"-p", "web-builder", "-t", "WBR-001", "--to", "Someday"}, want: "Someday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newBoardRoot(t)
			before := readFile(t, root+"/agents/projects/web-builder/tasks.md")

			res := runCLI(t, root, "", append([]string{"--json", "move"}, tt.args...)...)
			if code := output.GetExitCode(res.err); code != output.ExitUserError {
				t.Fatalf("exit code = %d, want %d (err %v)", code, output.ExitUserError, res.err)
			}
			if msg, _ := res.decode(t)["error"].(string); !strings.Contains(msg, tt.want) {
				t.Errorf("error = %q, want it to contain %q", msg, tt.want)
			}
			if after := readFile(t, root+"/agents/projects/web-builder/tasks.md"); after != before {
				t.Error("board changed on a failed move")
			}
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		value       string
		wantSection string
		check       func(task map[string]any) bool
	}{
		{
			name: "priority", field: "priority", value: "critical", wantSection: "Backlog",
			check: func(task map[string]any) bool { return task["priority"] == "Critical" },
		},
		{
			name: "column header", field: "Notes", value: "needs design", wantSection: "Backlog",
			check: func(task map[string]any) bool { return task["notes"] == "needs design" },
		},
		{
			name: "status moves", field: "status", value: "Completed", wantSection: "Completed",
			check: func(task map[string]any) bool { return task["status"] == "Completed" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newBoardRoot(t)

			res := runCLI(t, root, "", "--json", "set", "-p", "web-builder", "-t", "WBR-004", "--field", tt.field, "--value", tt.value)
			if res.err != nil {
				t.Fatalf("set error = %v\n%s", res.err, res.stdout)
			}
			task := res.decode(t)["task"].(map[string]any)
			if !tt.check(task) {
				t.Errorf("task = %v", task)
			}
			if got := boardSection(t, root, "WBR-004"); got != tt.wantSection {
				t.Errorf("section = %q, want %q", got, tt.wantSection)
			}
		})
	}
}

func TestSet_UnknownField(t *testing.T) {
	root := newBoardRoot(t)

	res := runCLI(t, root, "", "set", "-p", "web-builder", "-t", "WBR-004", "--field", "color", "--value", "red")
	if code := output.GetExitCode(res.err); code != output.ExitUserError {
		t.Fatalf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(res.stderr, "unknown field") {
		t.Errorf("stderr = %q", res.stderr)
	}
}
