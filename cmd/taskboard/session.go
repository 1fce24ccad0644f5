package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/artifact"
)

// sessionFlags holds flags for the session command.
type sessionFlags struct {
	project string
	title   string
	tasks   []string
}

// newSessionCmd creates the session command.
func newSessionCmd() *cobra.Command {
	var flags sessionFlags
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start a free-form working session log",
		Long: `Create a working session log under the project's sessions/ directory.

The log is named after the current time and lists the tasks in focus. It
does not change the board.

Examples:
  taskboard session --project web-builder --title "Renderer spike"
  taskboard session --project web-builder --title "Input polish" --task WBR-002 --task WBR-004`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "Project folder name")
	cmd.Flags().StringVar(&flags.title, "title", "", "Session title (default: Working Session)")
	cmd.Flags().StringSliceVarP(&flags.tasks, "task", "t", nil, "Task ID in focus (repeatable)")
	return cmd
}

func runSession(cmd *cobra.Command, flags sessionFlags) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	p, err := ws.repo.Folder(flags.project)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	gen := artifact.NewGenerator(ws.cfg, ws.repo, ws.logger)
	path, err := gen.WorkingSession(p, flags.title, flags.tasks)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"project": p.Name, "path": path})
	}
	printer.Done("Session log: %s", ws.relative(path))
	return nil
}
