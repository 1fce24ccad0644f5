package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/handoff"
	"github.com/gorewood/taskboard/internal/output"
)

const handoffCommitMessage = "docs: update agent handoffs"

// handoffFlags holds flags for the handoff command.
type handoffFlags struct {
	title      string
	codename   string
	summary    []string
	next       []string
	notes      []string
	key        string
	force      bool
	appendLine string
	event      string
	commit     bool
}

// newHandoffCmd creates the handoff command.
func newHandoffCmd() *cobra.Command {
	var flags handoffFlags
	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Record a handoff entry in agents/HANDOFFS.md",
		Long: `Record what an agent finished and what the next agent should pick up.

In CI the pull request event at $GITHUB_EVENT_PATH supplies the entry: only
merged pull requests with a handoff* label are recorded. Without an event,
--title or --force is needed. Entries are keyed (pr-<number>, --key, or a
random ID) and a key already in the file is skipped unless --force.

--append adds a single bullet under "Automation Runs" instead.

Examples:
  taskboard handoff                       # From the GitHub event (CI)
  taskboard handoff --title "Renderer" --summary "Added GPU path" --next "Wire input"
  taskboard handoff --append "nightly ledger refresh ok"
  taskboard handoff --title "Renderer" --key wbr-001 --commit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHandoff(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.title, "title", "", "Override the entry title")
	cmd.Flags().StringVar(&flags.codename, "codename", "", "Agent codename override")
	cmd.Flags().StringArrayVar(&flags.summary, "summary", nil, "Summary bullet (repeatable)")
	cmd.Flags().StringArrayVar(&flags.next, "next", nil, "Next-step bullet (repeatable)")
	cmd.Flags().StringArrayVar(&flags.notes, "note", nil, "Note bullet (repeatable)")
	cmd.Flags().StringVar(&flags.key, "key", "", "Stable entry key used for duplicate detection")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Record even without event data or when already logged")
	cmd.Flags().StringVar(&flags.appendLine, "append", "", "Append a single Automation Runs bullet")
	cmd.Flags().StringVar(&flags.event, "event", "", "Event payload path (default: $GITHUB_EVENT_PATH)")
	cmd.Flags().BoolVar(&flags.commit, "commit", false, "Commit HANDOFFS.md after writing")
	return cmd
}

func runHandoff(cmd *cobra.Command, flags handoffFlags) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	file := handoff.Open(ws.cfg.HandoffsPath(), ws.logger)

	if flags.appendLine != "" {
		if err := file.AppendAutomation(flags.appendLine); err != nil {
			err = exitError(err)
			printer.Error(err)
			return err
		}
		if err := ws.commitHandoffs(cmd, flags.commit); err != nil {
			printer.Error(err)
			return err
		}
		if printer.IsJSON() {
			return printer.Success(map[string]any{"appended": true, "automation": flags.appendLine})
		}
		printer.Done("Appended automation note: %s", flags.appendLine)
		return nil
	}

	eventPath := flags.event
	if eventPath == "" {
		eventPath = os.Getenv("GITHUB_EVENT_PATH")
	}
	ev, err := handoff.LoadEvent(eventPath)
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	entry, skip := handoff.Build(ev, handoff.Options{
		Key:      flags.key,
		Title:    flags.title,
		Codename: flags.codename,
		Summary:  flags.summary,
		Next:     flags.next,
		Notes:    flags.notes,
		Force:    flags.force,
		Actor:    os.Getenv("GITHUB_ACTOR"),
	}, time.Now().Format(board.DateLayout))
	if skip != "" {
		if printer.IsJSON() {
			return printer.Success(map[string]any{"appended": false, "skipped": skip})
		}
		printer.Println("Skipping handoff entry: " + skip)
		return nil
	}

	entry, appended, err := file.Append(entry, flags.force)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	if !appended {
		err := output.NewConflictError("handoff entry already exists: " + entry.Title).
			WithHint("pass --force to record it again")
		printer.Error(err)
		return err
	}
	if err := ws.commitHandoffs(cmd, flags.commit); err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"appended": true, "entry": entry, "path": file.Path()})
	}
	printer.Done("Appended handoff entry for %s", entry.Title)
	return nil
}

func (w *workspace) commitHandoffs(cmd *cobra.Command, enabled bool) error {
	if !enabled {
		return nil
	}
	_, err := w.commit(cmd.Context(), []string{w.cfg.HandoffsPath()}, handoffCommitMessage)
	return err
}
