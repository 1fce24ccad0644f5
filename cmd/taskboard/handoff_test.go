package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/taskboard/internal/output"
)

const mergedEvent = `{
  "action": "closed",
  "pull_request": {
    "number": 42,
    "title": "Add renderer",
    "body": "- GPU path\n- Canvas fallback",
    "merged": true,
    "labels": [{"name": "handoff:renderer"}],
    "merged_by": {"login": "octo"},
    "base": {"ref": "main"}
  }
}`

func newHandoffRoot(t *testing.T) string {
	t.Helper()
	t.Setenv("GITHUB_EVENT_PATH", "")
	t.Setenv("GITHUB_ACTOR", "")
	return newBoardRoot(t)
}

func TestHandoff_Manual(t *testing.T) {
	root := newHandoffRoot(t)
	args := []string{"--json", "handoff", "--title", "Renderer", "--codename", "Nova",
		"--summary", "Added GPU path", "--next", "Wire input", "--key", "wbr-001"}

	res := runCLI(t, root, "", args...)
	if res.err != nil {
		t.Fatalf("handoff error = %v\n%s", res.err, res.stdout)
	}
	out := res.decode(t)
	entry := out["entry"].(map[string]any)
	if out["appended"] != true || entry["key"] != "wbr-001" || entry["codename"] != "Nova" {
		t.Errorf("out = %v", out)
	}

	doc := readFile(t, filepath.Join(root, "agents", "HANDOFFS.md"))
	for _, want := range []string{`"Renderer" (Agent codename: ` + "`Nova`)", "<!-- handoff-id: wbr-001 -->", "* Added GPU path", "1. Wire input"} {
		if !strings.Contains(doc, want) {
			t.Errorf("HANDOFFS.md missing %q:\n%s", want, doc)
		}
	}

	dup := runCLI(t, root, "", args...)
	if code := output.GetExitCode(dup.err); code != output.ExitConflict {
		t.Fatalf("duplicate exit code = %d, want %d", code, output.ExitConflict)
	}
	if again := readFile(t, filepath.Join(root, "agents", "HANDOFFS.md")); again != doc {
		t.Error("duplicate entry changed HANDOFFS.md")
	}

	forced := runCLI(t, root, "", append(args, "--force")...)
	if forced.err != nil {
		t.Fatalf("forced handoff error = %v", forced.err)
	}
	if n := strings.Count(readFile(t, filepath.Join(root, "agents", "HANDOFFS.md")), "<!-- handoff-id: wbr-001 -->"); n != 2 {
		t.Errorf("entries with key = %d, want 2", n)
	}
}

func TestHandoff_Event(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		appended bool
		skipped  string
	}{
		{name: "merged with label", event: mergedEvent, appended: true},
		{
			name:    "no handoff label",
			event:   strings.Replace(mergedEvent, "handoff:renderer", "bug", 1),
			skipped: "merged pull request lacks a handoff label",
		},
		{
			name:    "not merged",
			event:   strings.Replace(mergedEvent, `"merged": true`, `"merged": false`, 1),
			skipped: "no merged pull_request event",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newHandoffRoot(t)
			eventPath := filepath.Join(t.TempDir(), "event.json")
			writeFile(t, eventPath, tt.event)
			t.Setenv("GITHUB_EVENT_PATH", eventPath)

			res := runCLI(t, root, "", "--json", "handoff")
			if res.err != nil {
				t.Fatalf("handoff error = %v\n%s", res.err, res.stdout)
			}
			out := res.decode(t)
			if out["appended"] != tt.appended {
				t.Errorf("appended = %v, want %v", out["appended"], tt.appended)
			}
			if tt.skipped != "" {
				if out["skipped"] != tt.skipped {
					t.Errorf("skipped = %v, want %q", out["skipped"], tt.skipped)
				}
				return
			}
			entry := out["entry"].(map[string]any)
			if entry["key"] != "pr-42" || entry["codename"] != "octo" || entry["title"] != "Add renderer" {
				t.Errorf("entry = %v", entry)
			}
			if doc := readFile(t, filepath.Join(root, "agents", "HANDOFFS.md")); !strings.Contains(doc, "* Canvas fallback") {
				t.Errorf("HANDOFFS.md = %q", doc)
			}
		})
	}
}

func TestHandoff_NoContext(t *testing.T) {
	root := newHandoffRoot(t)

	res := runCLI(t, root, "", "--color", "never", "handoff")
	if res.err != nil {
		t.Fatalf("handoff error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "Skipping handoff entry: no event context and no manual data") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestHandoff_AppendAutomation(t *testing.T) {
	root := newHandoffRoot(t)

	for _, line := range []string{"ledger refreshed", "sitemap refreshed"} {
		if res := runCLI(t, root, "", "handoff", "--append", line); res.err != nil {
			t.Fatalf("handoff --append error = %v", res.err)
		}
	}
	doc := readFile(t, filepath.Join(root, "agents", "HANDOFFS.md"))
	first := strings.Index(doc, "- sitemap refreshed")
	second := strings.Index(doc, "- ledger refreshed")
	if !strings.Contains(doc, "## Automation Runs") || first < 0 || second < first {
		t.Errorf("HANDOFFS.md = %q", doc)
	}
}
