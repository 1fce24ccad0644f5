package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/output"
)

// listPreviewLimit caps the --list view.
const listPreviewLimit = 10

// projectSummary is one row of the project listing.
type projectSummary struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	HasTasks    bool   `json:"has_tasks"`
	Summary     string `json:"summary,omitempty"`
}

// tasksFlags holds flags for the tasks command.
type tasksFlags struct {
	project string
	list    bool
	all     bool
}

// newTasksCmd creates the tasks command.
func newTasksCmd() *cobra.Command {
	var flags tasksFlags
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List projects or the tasks on a project board",
		Long: `List projects, or the tasks on one project's board.

Without --project, every project folder is listed with its display name.
With --project, the available tasks (Backlog or Ready, every dependency
Completed) are shown in priority order.

Examples:
  taskboard tasks                              # List projects
  taskboard tasks --project web-builder        # Available tasks by priority
  taskboard tasks --project web-builder --list # First 10 tasks on the board
  taskboard tasks --project web-builder --all  # Every task with its status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTasks(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Project folder name")
	cmd.Flags().BoolVar(&flags.list, "list", false, "List the first tasks on the board with a total")
	cmd.Flags().BoolVar(&flags.all, "all", false, "List every task with its status")
	cmd.MarkFlagsMutuallyExclusive("list", "all")
	return cmd
}

func runTasks(cmd *cobra.Command, flags tasksFlags) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	if flags.project == "" {
		return runListProjects(printer, ws)
	}

	p, err := ws.locateProject(flags.project)
	if err != nil {
		printer.Error(err)
		return err
	}
	tasks, err := ws.repo.ListTasks(p)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	if len(tasks) == 0 {
		err := exitError(fmt.Errorf("%w in %s", board.ErrNoTasks, p.TasksFile))
		printer.Error(err)
		return err
	}

	view, shown := "available", board.Prioritize(board.Available(tasks))
	switch {
	case flags.all:
		view, shown = "all", tasks
	case flags.list:
		view, shown = "list", tasks[:min(len(tasks), listPreviewLimit)]
	}

	if printer.IsJSON() {
		if shown == nil {
			shown = []board.Task{}
		}
		return printer.Success(map[string]any{
			"project": p.Name,
			"view":    view,
			"total":   len(tasks),
			"tasks":   shown,
		})
	}

	printer.Section(p.DisplayName)
	switch view {
	case "list":
		for _, t := range shown {
			printer.Println(fmt.Sprintf("  %s: %s (%s)", t.ID, t.Title, orNA(string(t.Priority))))
		}
		printer.Println()
		printer.KeyValue("Total", fmt.Sprintf("%d tasks", len(tasks)))
	case "all":
		printer.Table("", []string{"ID", "Title", "Status", "Priority", "Owner"}, taskRows(shown, func(t board.Task) []string {
			return []string{t.ID, t.Title, t.Status, orNA(string(t.Priority)), t.Owner}
		}))
	default:
		if len(shown) == 0 {
			printer.Println("No tasks available to pick")
			return nil
		}
		printer.Table("", []string{"ID", "Title", "Priority", "Dependencies"}, taskRows(shown, func(t board.Task) []string {
			return []string{t.ID, t.Title, orNA(string(t.Priority)), strings.Join(t.Dependencies, ", ")}
		}))
	}
	return nil
}

func runListProjects(printer *output.Printer, ws *workspace) error {
	projects, err := ws.repo.Projects()
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	summaries := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, projectSummary{
			Name:        p.Name,
			DisplayName: p.DisplayName,
			HasTasks:    p.HasTasksFile(),
			Summary:     board.ReadmeSummary(p.Path),
		})
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"projects_dir": ws.cfg.ProjectsDir(),
			"projects":     summaries,
		})
	}

	if len(summaries) == 0 {
		printer.Println("No projects found in " + ws.cfg.ProjectsDir())
		return nil
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		file := board.TasksFileName
		if !s.HasTasks {
			file = "(missing)"
		}
		rows = append(rows, []string{s.Name, s.DisplayName, file, s.Summary})
	}
	printer.Table("Projects", []string{"Name", "Display Name", "Board", "Summary"}, rows)
	return nil
}

func taskRows(tasks []board.Task, row func(board.Task) []string) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, row(t))
	}
	return rows
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
