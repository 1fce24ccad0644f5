package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/artifact"
	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/output"
)

// executeFlags holds flags for the execute command.
type executeFlags struct {
	project  string
	task     string
	autoPick bool
	owner    string
}

// newExecuteCmd creates the execute command.
func newExecuteCmd() *cobra.Command {
	var flags executeFlags
	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Prepare a task for an agent and move it to In Progress",
		Long: `Prepare a task for execution by an agent.

Writes a session log and an implementation prompt under the project's
sessions/ directory, then moves the task to In Progress. When the move
fails the artifacts are kept and a warning is printed.

With --auto-pick the highest-priority available task is chosen: Backlog
or Ready, with every dependency Completed.

Examples:
  taskboard execute --project web-builder --task WBR-001
  taskboard execute --project web-builder --auto-pick --owner Codex
  taskboard execute --project web-builder --auto-pick --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Project folder name")
	cmd.Flags().StringVarP(&flags.task, "task", "t", "", "Task ID to execute")
	cmd.Flags().BoolVar(&flags.autoPick, "auto-pick", false, "Pick the highest-priority available task")
	cmd.Flags().StringVar(&flags.owner, "owner", "", "Owner recorded on the task (default: configured default owner)")
	cmd.MarkFlagsMutuallyExclusive("task", "auto-pick")
	cmd.MarkFlagsOneRequired("task", "auto-pick")
	return cmd
}

func runExecute(cmd *cobra.Command, flags executeFlags) error {
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

	bundle, err := ws.prepare(p, flags)
	if err != nil {
		printer.Error(err)
		return err
	}
	if bundle == nil {
		if printer.IsJSON() {
			return printer.Success(map[string]any{"project": p.Name, "picked": false})
		}
		printer.Println("No tasks available to pick")
		return nil
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"project": p.Name,
			"picked":  true,
			"bundle":  bundle,
		})
	}
	printBundle(printer, ws, p, bundle)
	return nil
}

// prepare picks the task and writes its execution bundle. A nil bundle
// with a nil error means auto-pick found nothing.
func (w *workspace) prepare(p *board.Project, flags executeFlags) (*artifact.Bundle, error) {
	tasks, err := w.repo.ListTasks(p)
	if err != nil {
		return nil, exitError(err)
	}
	if len(tasks) == 0 {
		return nil, exitError(fmt.Errorf("%w in %s", board.ErrNoTasks, w.relative(p.TasksFile)))
	}

	task, err := pickTask(tasks, flags, p.Name)
	if err != nil || task.ID == "" {
		return nil, err
	}

	owner := flags.owner
	if owner == "" {
		owner = w.cfg.DefaultOwner
	}
	task.Owner = owner

	gen := artifact.NewGenerator(w.cfg, w.repo, w.logger)
	bundle, err := gen.ExecutionBundle(p, task, board.MoveOptions{Owner: owner})
	if err != nil {
		return nil, exitError(err)
	}
	return bundle, nil
}

// printBundle reports the artifacts written for a task.
func printBundle(printer *output.Printer, ws *workspace, p *board.Project, bundle *artifact.Bundle) {
	task := bundle.Task
	printer.Section("Executing " + task.ID + ": " + task.Title)
	printer.KeyValue("Project", p.DisplayName)
	printer.KeyValue("Priority", orNA(string(task.Priority)))
	printer.KeyValue("Owner", task.Owner)
	printer.Println()
	printer.Done("Session log: %s", ws.relative(bundle.SessionLog))
	printer.Done("Prompt: %s", ws.relative(bundle.Prompt))
	if bundle.Moved {
		printer.Done("Moved %s to %s", task.ID, board.StatusInProgress)
	} else {
		printer.Warn("%s", bundle.Warning)
	}
	printer.Println()
	printer.Println("Next: hand the prompt to your agent, then record progress in the session log.")
}

// pickTask returns the requested or auto-picked task. An empty task with a
// nil error means auto-pick found nothing.
func pickTask(tasks []board.Task, flags executeFlags, project string) (board.Task, error) {
	if flags.autoPick {
		task, _ := board.AutoPick(tasks)
		return task, nil
	}
	task, ok := board.GetTask(tasks, flags.task)
	if !ok {
		return board.Task{}, exitError(fmt.Errorf("%w: %s in %s", board.ErrTaskNotFound, flags.task, project))
	}
	return task, nil
}
