package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	if err := printer.Success(map[string]any{"moved": "WBR-001", "to": "In Progress"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if result["moved"] != "WBR-001" || result["to"] != "In Progress" {
		t.Errorf("unexpected payload: %v", result)
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewUserError("task not found: WBR-404"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if result["error"] != "task not found: WBR-404" {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitUserError {
		t.Errorf("code = %v, want %d", result["code"], ExitUserError)
	}
}

func TestPrinter_Human_ErrorWithHint(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(NewUserError("tasks file not found").WithHint("create agents/projects/arena/tasks.md"))

	if out.Len() != 0 {
		t.Errorf("human errors should go to stderr, stdout got %q", out.String())
	}
	got := errOut.String()
	for _, want := range []string{"Error", "tasks file not found", "hint:", "tasks.md"} {
		if !strings.Contains(got, want) {
			t.Errorf("stderr missing %q: %q", want, got)
		}
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("lab API %s", "unreachable")
	if !strings.Contains(buf.String(), "Warning: lab API unreachable") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Warn("quota reached")
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result["warning"] != "quota reached" {
		t.Errorf("warning = %v", result["warning"])
	}
}

func TestPrinter_PlainTable(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table("arena (2 task(s))", []string{"ID", "Title", "Priority"}, [][]string{
		{"WBR-001", "Renderer", "High"},
		{"WBR-002", "Input", "Low"},
	})

	want := "arena (2 task(s))\n" +
		"ID       Title     Priority\n" +
		"WBR-001  Renderer  High\n" +
		"WBR-002  Input     Low\n"
	if buf.String() != want {
		t.Errorf("table =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrinter_TTYTableHasBorder(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, true).Table("", []string{"ID"}, [][]string{{"A-1"}})
	if !strings.Contains(buf.String(), "A-1") || !strings.Contains(buf.String(), "╭") {
		t.Errorf("expected rounded border around cells, got %q", buf.String())
	}
}

func TestPrinter_PanelNonTTY(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Panel("Jules Quota", "Used today: 3")
	if buf.String() != "Jules Quota\n\nUsed today: 3\n" {
		t.Errorf("panel = %q", buf.String())
	}
}

func TestPrinter_Done(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Done("Created session log: %s", "sessions/x.md")
	if buf.String() != "✓ Created session log: sessions/x.md\n" {
		t.Errorf("Done = %q", buf.String())
	}
}

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  bool
	}{
		{"never", true, false},
		{"always", false, true},
		{"auto", true, true},
		{"auto", false, false},
		{"", true, true},
		{"bogus", false, false},
	}
	for _, tt := range tests {
		if got := ResolveColorMode(tt.mode, tt.isTTY); got != tt.want {
			t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
		}
	}
}

func TestPlainStylesHaveNoColor(t *testing.T) {
	printer := NewPrinter(&bytes.Buffer{}, false, false)
	if printer.styles.Error.GetForeground() != lipgloss.NewStyle().GetForeground() {
		t.Error("non-TTY error style should not carry a foreground color")
	}
	if IsTTY(&bytes.Buffer{}) || IsInteractive(strings.NewReader("")) {
		t.Error("buffers are never terminals")
	}
}
