package dispatch

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/gorewood/taskboard/internal/config"
)

// Tool kinds with a known command line.
const (
	KindClaude = "claude"
	KindCodex  = "codex"
	KindGemini = "gemini"
	KindJules  = "jules"
)

var kindOrder = []string{KindClaude, KindCodex, KindGemini, KindJules}

var headings = map[string]string{
	KindClaude: "Claude",
	KindCodex:  "Codex",
	KindGemini: "Gemini",
	KindJules:  "Jules",
}

// Tool is a resolved agent CLI.
type Tool struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Binary     string `json:"binary"`
	Model      string `json:"model,omitempty"`
	Output     string `json:"output"`
	Workflow   string `json:"workflow,omitempty"`
	DailyLimit int    `json:"daily_limit,omitempty"`
}

// Heading is the short name used in summary files and error messages.
func (t Tool) Heading() string {
	return headings[t.Name]
}

// Tools returns every configured tool with a known kind, claude first.
func Tools(cfg *config.Config) []Tool {
	tools := make([]Tool, 0, len(cfg.Tools))
	for name, tc := range cfg.Tools {
		if _, known := headings[name]; !known {
			continue
		}
		tools = append(tools, fromConfig(name, tc))
	}
	sort.Slice(tools, func(i, j int) bool {
		return slices.Index(kindOrder, tools[i].Name) < slices.Index(kindOrder, tools[j].Name)
	})
	return tools
}

// Resolve looks up tools by name, preserving order and dropping duplicates.
func Resolve(cfg *config.Config, names []string) ([]Tool, error) {
	var tools []Tool
	seen := make(map[string]bool)
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tc, ok := cfg.Tool(name)
		if _, known := headings[name]; !ok || !known {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTool, raw)
		}
		tools = append(tools, fromConfig(name, tc))
	}
	return tools, nil
}

func fromConfig(name string, tc config.ToolConfig) Tool {
	binary := tc.Binary
	if binary == "" {
		binary = name
	}
	label := tc.Label
	if label == "" {
		label = headings[name]
	}
	return Tool{
		Name:       name,
		Label:      label,
		Binary:     binary,
		Model:      tc.Model,
		Output:     tc.Output,
		Workflow:   tc.Workflow,
		DailyLimit: tc.DailyLimit,
	}
}
