package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// AutoExecuteWorkflow is always listed by Workflows.
const AutoExecuteWorkflow = ".github/workflows/agent-auto-execute.yml"

// Workflow is a CI workflow file and its display name.
type Workflow struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Workflows lists .github/workflows/agents-*.yml under root, sorted, then
// the auto-execute workflow. Missing files or names leave Name empty.
func Workflows(root string) ([]Workflow, error) {
	matches, err := filepath.Glob(filepath.Join(root, ".github", "workflows", "agents-*.yml"))
	if err != nil {
		return nil, fmt.Errorf("glob workflows: %w", err)
	}
	sort.Strings(matches)

	workflows := make([]Workflow, 0, len(matches)+1)
	for _, path := range matches {
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		workflows = append(workflows, Workflow{Path: filepath.ToSlash(rel), Name: workflowName(path)})
	}
	workflows = append(workflows, Workflow{
		Path: AutoExecuteWorkflow,
		Name: workflowName(filepath.Join(root, filepath.FromSlash(AutoExecuteWorkflow))),
	})
	return workflows, nil
}

func workflowName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var doc struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ""
	}
	return doc.Name
}
