package main

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/dispatch"
	"github.com/gorewood/taskboard/internal/git"
	"github.com/gorewood/taskboard/internal/ledger"
	"github.com/gorewood/taskboard/internal/sitemap"
)

// Commit messages for generated files.
const (
	ledgerCommitMessage  = "chore: refresh open tasks ledger"
	sitemapCommitMessage = "chore: refresh sitemap"
)

// newLedgerCmd creates the ledger command.
func newLedgerCmd() *cobra.Command {
	var commitFlag bool
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Regenerate the open tasks ledger",
		Long: `Collect Backlog and In Progress tasks from every project board and write
them to agents/OPENTASKS.md, sorted by status, priority, project and ID.

Examples:
  taskboard ledger           # Rewrite agents/OPENTASKS.md
  taskboard ledger --commit  # Rewrite and commit it when it changed
  taskboard ledger --json    # Print the collected entries as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedger(cmd, commitFlag)
		},
	}
	cmd.Flags().BoolVar(&commitFlag, "commit", false, "Commit the ledger when it changed")
	return cmd
}

func runLedger(cmd *cobra.Command, commitFlag bool) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	entries, err := ws.writeLedger(time.Now())
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	committed := false
	if commitFlag {
		committed, err = ws.commit(cmd.Context(), []string{ws.cfg.LedgerPath()}, ledgerCommitMessage)
		if err != nil {
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		if entries == nil {
			entries = []ledger.Entry{}
		}
		return printer.Success(map[string]any{
			"path":      ws.cfg.LedgerPath(),
			"count":     len(entries),
			"committed": committed,
			"entries":   entries,
		})
	}

	printer.Done("Ledger written to %s (%d open tasks)", ws.relative(ws.cfg.LedgerPath()), len(entries))
	if commitFlag && !committed {
		printer.Println("Nothing to commit")
	}
	return nil
}

// writeLedger collects open tasks and rewrites the ledger file.
func (w *workspace) writeLedger(now time.Time) ([]ledger.Entry, error) {
	entries, err := ledger.Collect(w.repo)
	if err != nil {
		return nil, err
	}
	if err := ledger.Write(w.cfg.LedgerPath(), ledger.Render(entries, now)); err != nil {
		return nil, err
	}
	w.logger.Debug("wrote ledger", "path", w.cfg.LedgerPath(), "entries", len(entries))
	return entries, nil
}

// writeSitemap rebuilds both sitemap files at the board root.
func (w *workspace) writeSitemap(now time.Time) ([]string, error) {
	s, err := sitemap.Build(w.cfg.Root, now)
	if err != nil {
		return nil, err
	}
	return sitemap.Write(w.cfg.Root, s)
}

// commit stages and commits paths in the board root. It reports false when
// nothing changed.
func (w *workspace) commit(ctx context.Context, paths []string, message string) (bool, error) {
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		rel = append(rel, w.relative(p))
	}
	committed, err := git.SafeCommit(ctx, w.cfg.Root, rel, message)
	if err != nil {
		return false, err
	}
	if committed {
		branch, _ := git.CurrentBranch(ctx, w.cfg.Root)
		w.logger.Info("committed", "paths", rel, "branch", branch)
	}
	return committed, nil
}

// generators returns the post-dispatch generators: the ledger and sitemap,
// then any configured scripts.
func (w *workspace) generators(runner dispatch.Runner) []dispatch.Generator {
	gens := []dispatch.Generator{
		{Name: "ledger", Run: func(context.Context) error {
			_, err := w.writeLedger(time.Now())
			return err
		}},
		{Name: "sitemap", Run: func(context.Context) error {
			_, err := w.writeSitemap(time.Now())
			return err
		}},
	}
	return append(gens, dispatch.ScriptGenerators(w.cfg, runner)...)
}

// relative returns path relative to the board root when it lies inside it.
func (w *workspace) relative(path string) string {
	if rel, err := filepath.Rel(w.cfg.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
