package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/board"
)

// moveFlags holds flags for the move command.
type moveFlags struct {
	project string
	task    string
	to      string
	owner   string
	notes   string
}

// newMoveCmd creates the move command.
func newMoveCmd() *cobra.Command {
	var flags moveFlags
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to another status section",
		Long: `Move a task row to the top of another section's table.

Section names match case-insensitively against the configured sections.
A missing destination section is created with the schema's columns.

Examples:
  taskboard move --project web-builder --task WBR-001 --to "In Progress"
  taskboard move --project web-builder --task WBR-001 --to completed --notes "merged"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMove(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Project folder name")
	cmd.Flags().StringVarP(&flags.task, "task", "t", "", "Task ID")
	cmd.Flags().StringVar(&flags.to, "to", "", "Destination section")
	cmd.Flags().StringVar(&flags.owner, "owner", "", "Replace the task owner")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "Replace the task notes")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runMove(cmd *cobra.Command, flags moveFlags) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	p, err := ws.locateProject(flags.project)
	if err != nil {
		printer.Error(err)
		return err
	}

	task, err := ws.repo.Move(p, flags.task, flags.to, board.MoveOptions{Owner: flags.owner, Notes: flags.notes})
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"project": p.Name, "task": task})
	}
	printer.Done("Moved %s to %s", task.ID, task.Status)
	return nil
}

// setFlags holds flags for the set command.
type setFlags struct {
	project string
	task    string
	field   string
	value   string
}

// newSetCmd creates the set command.
func newSetCmd() *cobra.Command {
	var flags setFlags
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update one field of a task",
		Long: `Rewrite one cell of a task row in place.

The field is a column header or field name (owner, priority, notes, ...).
Setting status moves the task to that section. The ID cannot be changed.

Examples:
  taskboard set --project web-builder --task WBR-004 --field priority --value high
  taskboard set --project web-builder --task WBR-004 --field status --value Review`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSet(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Project folder name")
	cmd.Flags().StringVarP(&flags.task, "task", "t", "", "Task ID")
	cmd.Flags().StringVar(&flags.field, "field", "", "Field or column header to update")
	cmd.Flags().StringVar(&flags.value, "value", "", "New cell value")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

func runSet(cmd *cobra.Command, flags setFlags) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	p, err := ws.locateProject(flags.project)
	if err != nil {
		printer.Error(err)
		return err
	}

	task, err := ws.repo.UpdateField(p, flags.task, flags.field, flags.value)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"project": p.Name, "field": flags.field, "task": task})
	}
	printer.Done("Updated %s %s", task.ID, flags.field)
	return nil
}
