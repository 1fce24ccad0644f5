package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/dispatch"
	"github.com/gorewood/taskboard/internal/output"
)

// newWorkflowsCmd creates the workflows command.
func newWorkflowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workflows",
		Short: "Summarise agent tools and CI workflows",
		Long: `Print the configured agent CLIs and the agent workflows found under
.github/workflows (agents-*.yml plus the auto-execute workflow).

Examples:
  taskboard workflows
  taskboard workflows --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			ws, err := loadWorkspace(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}
			return printWorkflowSummary(printer, ws)
		},
	}
}

// printWorkflowSummary lists tools and workflow files.
func printWorkflowSummary(printer *output.Printer, ws *workspace) error {
	tools := dispatch.Tools(ws.cfg)
	workflows, err := dispatch.Workflows(ws.cfg.Root)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if workflows == nil {
			workflows = []dispatch.Workflow{}
		}
		return printer.Success(map[string]any{"tools": tools, "workflows": workflows})
	}

	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		rows = append(rows, []string{t.Name, t.Label, t.Binary, orNA(t.Model), t.Output})
	}
	printer.Table("Agent Tools", []string{"Name", "Label", "Binary", "Model", "Output"}, rows)

	printer.Section("Workflows")
	if len(workflows) == 0 {
		printer.Println("No agent workflows found in .github/workflows")
		return nil
	}
	for _, wf := range workflows {
		printer.KeyValue(wf.Path, wf.Name)
	}
	return nil
}
