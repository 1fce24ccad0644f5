package handoff

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func mergedEvent(labels ...string) *Event {
	pr := &PullRequest{
		Number:   42,
		Title:    "Add renderer",
		Body:     "- Built the canvas\n\n* Wired input\n",
		Merged:   true,
		MergedBy: &User{Login: "octo"},
	}
	pr.Base.Ref = "main"
	for _, l := range labels {
		pr.Labels = append(pr.Labels, Label{Name: l})
	}
	return &Event{Action: "closed", PullRequest: pr}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		ev       *Event
		opts     Options
		wantSkip bool
		check    func(t *testing.T, e Entry)
	}{
		{
			name: "merged pr with handoff label",
			ev:   mergedEvent("bug", "Handoff-ready"),
			check: func(t *testing.T, e Entry) {
				if e.Key != "pr-42" || e.Title != "Add renderer" || e.Codename != "octo" || e.Branch != "main" {
					t.Errorf("entry = %+v", e)
				}
				if !slices.Equal(e.Summary, []string{"Built the canvas", "Wired input"}) {
					t.Errorf("summary = %v", e.Summary)
				}
			},
		},
		{name: "missing label", ev: mergedEvent("bug"), wantSkip: true},
		{name: "not merged", ev: &Event{Action: "closed", PullRequest: &PullRequest{}}, wantSkip: true},
		{name: "no event no data", wantSkip: true},
		{
			name: "manual entry",
			opts: Options{Title: "Sprint wrap", Actor: "ci-bot"},
			check: func(t *testing.T, e Entry) {
				if e.Key != "" || e.Codename != "ci-bot" {
					t.Errorf("entry = %+v", e)
				}
				if !slices.Equal(e.Summary, []string{"Merged PR #N/A"}) {
					t.Errorf("summary = %v", e.Summary)
				}
			},
		},
		{
			name: "forced defaults",
			opts: Options{Force: true},
			check: func(t *testing.T, e Entry) {
				if e.Title != "Handoff Update" || e.Codename != "unknown" {
					t.Errorf("entry = %+v", e)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, skip := Build(tt.ev, tt.opts, "2026-01-15")
			if tt.wantSkip != (skip != "") {
				t.Fatalf("skip = %q, wantSkip %v", skip, tt.wantSkip)
			}
			if tt.check != nil {
				tt.check(t, entry)
			}
		})
	}
}

func TestEntryRender(t *testing.T) {
	e := Entry{
		Key:      "pr-42",
		Date:     "2026-01-15",
		Title:    "Add renderer",
		Codename: "octo",
		Summary:  []string{"Built the canvas"},
		PRNumber: 42,
		Branch:   "main",
	}
	want := "## Entry: 2026-01-15 — \"Add renderer\" (Agent codename: `octo`)\n" +
		"<!-- handoff-id: pr-42 -->\n" +
		"\n**Summary**\n\n" +
		"* Built the canvas\n" +
		"\n**Next Agent To-Do**\n\n" +
		"1. " + DefaultNextStep + "\n" +
		"\n**Notes**\n\n" +
		"* Source PR: #42\n" +
		"* Merged into `main`\n" +
		"\n---\n"
	if got := e.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestFileAppend_DedupesByKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HANDOFFS.md")
	if err := os.WriteFile(path, []byte("# Handoffs\n\n---\n\n## Entry: old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := Open(path, nil)
	entry, _ := Build(mergedEvent("handoff"), Options{}, "2026-01-15")

	if _, added, err := f.Append(entry, false); err != nil || !added {
		t.Fatalf("Append() = %v, %v", added, err)
	}
	entry.Title = "Retitled"
	if _, added, err := f.Append(entry, false); err != nil || added {
		t.Fatalf("second Append() = %v, %v; want skipped", added, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if strings.Count(content, Marker("pr-42")) != 1 {
		t.Errorf("marker count != 1:\n%s", content)
	}
	if strings.Index(content, "Add renderer") > strings.Index(content, "## Entry: old") {
		t.Errorf("new entry not inserted before older entries:\n%s", content)
	}
}

func TestFileAppend_GeneratesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "HANDOFFS.md")
	f := Open(path, nil)
	entry, _ := Build(nil, Options{Title: "Manual"}, "2026-01-15")

	written, added, err := f.Append(entry, false)
	if err != nil || !added {
		t.Fatalf("Append() = %v, %v", added, err)
	}
	if len(written.Key) != 36 {
		t.Errorf("generated key = %q, want a UUID", written.Key)
	}

	// Without a key the title check applies.
	if _, added, _ := f.Append(entry, false); added {
		t.Error("duplicate title appended")
	}
	if _, added, _ := f.Append(entry, true); !added {
		t.Error("force did not append")
	}
}

func TestInsert_NoRule(t *testing.T) {
	got := Insert("# Handoffs\n", "ENTRY\n")
	if got != "# Handoffs\n\nENTRY\n" {
		t.Errorf("Insert() = %q", got)
	}
}

func TestAppendAutomationLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "existing section",
			content: "# H\n\n## Automation Runs\n\n- older\n\n---\n",
			want:    "# H\n\n## Automation Runs\n\n- newer\n- older\n\n---\n",
		},
		{
			name:    "creates section before rule",
			content: "# H\n---\nrest\n",
			want:    "# H\n\n## Automation Runs\n\n- newer\n\n---\nrest\n",
		},
		{
			name:    "creates section at end",
			content: "# H\n",
			want:    "# H\n\n## Automation Runs\n\n- newer\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppendAutomationLine(tt.content, "newer"); got != tt.want {
				t.Errorf("AppendAutomationLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "event.json")
	payload := `{"action":"closed","pull_request":{"number":7,"merged":true,"labels":[{"name":"handoff"}],"base":{"ref":"dev"}}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	ev, err := LoadEvent(path)
	if err != nil {
		t.Fatalf("LoadEvent() error = %v", err)
	}
	if ev.PullRequest.Number != 7 || ev.PullRequest.Base.Ref != "dev" || !ev.PullRequest.HasHandoffLabel() {
		t.Errorf("event = %+v", ev.PullRequest)
	}

	for _, p := range []string{"", filepath.Join(dir, "absent.json")} {
		if ev, err := LoadEvent(p); ev != nil || err != nil {
			t.Errorf("LoadEvent(%q) = %v, %v", p, ev, err)
		}
	}
}
