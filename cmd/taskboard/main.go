// Package main provides the entry point for the taskboard CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves --color against the command's output writer.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the taskboard CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Markdown task boards for coordinating AI coding agents",
		Long: `Taskboard - markdown task boards for coordinating AI coding agents.

Each project under agents/projects/ keeps a tasks.md board of status
sections. Taskboard:
  - Lists tasks and picks the next available one by priority and dependencies
  - Prepares session logs and implementation prompts, then moves the task
  - Aggregates open work into agents/OPENTASKS.md
  - Dispatches ledger tasks to external agent CLIs (claude, codex, gemini, jules)

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'taskboard --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("color", "auto", "Color output: auto, always, never")
	flags.String("root", "", "Board root directory (default: $TASKBOARD_ROOT, git top level, or cwd)")
	flags.String("config", "", "Config file (default: <root>/taskboard.yaml)")
	flags.Bool("verbose", false, "Enable debug logging")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "board", Title: "Board Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "sync", Title: "Sync Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newTasksCmd(), "board")
	addGroupedCommand(cmd, newMoveCmd(), "board")
	addGroupedCommand(cmd, newSetCmd(), "board")
	addGroupedCommand(cmd, newLedgerCmd(), "board")

	addGroupedCommand(cmd, newExecuteCmd(), "agent")
	addGroupedCommand(cmd, newSessionCmd(), "agent")
	addGroupedCommand(cmd, newDispatchCmd(), "agent")
	addGroupedCommand(cmd, newRunCmd(), "agent")

	addGroupedCommand(cmd, newHandoffCmd(), "sync")
	addGroupedCommand(cmd, newLabCmd(), "sync")
	addGroupedCommand(cmd, newSitemapCmd(), "sync")

	addGroupedCommand(cmd, newWorkflowsCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
