package main

import (
	"time"

	"github.com/spf13/cobra"
)

// newSitemapCmd creates the sitemap command.
func newSitemapCmd() *cobra.Command {
	var commitFlag bool
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Regenerate SITEMAP.md and SITEMAP_DETAILED.md",
		Long: `Write a directory overview and a full directory tree at the board root.

Build output, dependency folders and dot-directories are skipped, except
.github.

Examples:
  taskboard sitemap
  taskboard sitemap --commit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSitemap(cmd, commitFlag)
		},
	}
	cmd.Flags().BoolVar(&commitFlag, "commit", false, "Commit the sitemap files when they changed")
	return cmd
}

func runSitemap(cmd *cobra.Command, commitFlag bool) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	paths, err := ws.writeSitemap(time.Now())
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}

	committed := false
	if commitFlag {
		committed, err = ws.commit(cmd.Context(), paths, sitemapCommitMessage)
		if err != nil {
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"paths": paths, "committed": committed})
	}
	for _, p := range paths {
		printer.Done("Wrote %s", ws.relative(p))
	}
	return nil
}
