package dispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// TriageTemplate is one Gemini triage workflow from the prompt library.
type TriageTemplate struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Script      string   `json:"script"`
	Checklist   []string `json:"checklist"`
	References  []string `json:"references"`
}

// LoadTriageLibrary reads a JSON (comments allowed) array of templates.
// A missing file yields no templates. Entries without key, title, or
// script are skipped.
func LoadTriageLibrary(path string) ([]TriageTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read triage library: %w", err)
	}

	var raw []TriageTemplate
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("parse triage library %s: %w", path, err)
	}

	templates := raw[:0]
	for _, t := range raw {
		if strings.TrimSpace(t.Key) == "" || strings.TrimSpace(t.Title) == "" || strings.TrimSpace(t.Script) == "" {
			continue
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// PrependTriage appends the triage workflow block to base after a
// horizontal rule.
func PrependTriage(base string, t TriageTemplate) string {
	lines := []string{
		"### Gemini Triage Workflow: " + t.Title,
		"Scenario: " + orDefault(t.Description, "n/a"),
		"",
		"Workflow Script:",
		strings.TrimSpace(t.Script),
	}
	if items := nonEmpty(t.Checklist); len(items) > 0 {
		lines = append(lines, "", "Checklist:")
		for _, item := range items {
			lines = append(lines, "- "+item)
		}
	}
	if items := nonEmpty(t.References); len(items) > 0 {
		lines = append(lines, "", "References to consult:")
		for _, item := range items {
			lines = append(lines, "- "+item)
		}
	}
	return strings.TrimRight(base, " \t\n") + "\n\n---\n" + strings.Join(lines, "\n") + "\n"
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
