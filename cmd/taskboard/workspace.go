package main

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/config"
	"github.com/gorewood/taskboard/internal/dispatch"
	"github.com/gorewood/taskboard/internal/git"
	"github.com/gorewood/taskboard/internal/lab"
	"github.com/gorewood/taskboard/internal/ledger"
	"github.com/gorewood/taskboard/internal/output"
)

// workspace is the configuration and services for one invocation.
type workspace struct {
	cfg    *config.Config
	logger *log.Logger
	repo   *board.Repository
}

// persistentFlag reads a root persistent flag as a string.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// newPrinter builds the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// loadWorkspace resolves the board root, loads configuration and opens the
// repository.
func loadWorkspace(cmd *cobra.Command) (*workspace, error) {
	root, err := config.ResolveRoot(persistentFlag(cmd, "root"), git.RepoRoot)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("cannot resolve board root", err)
	}
	cfg, err := config.Load(root, persistentFlag(cmd, "config"))
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err).
			WithHint("check the YAML in taskboard.yaml or the file passed to --config")
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel, persistentFlag(cmd, "verbose") == "true")
	return &workspace{cfg: cfg, logger: logger, repo: board.NewRepository(cfg, logger)}, nil
}

// newLogger returns a stderr logger at level, or debug when verbose.
// Unknown levels fall back to info.
func newLogger(w io.Writer, level string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "taskboard"})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// locateProject resolves a project and converts lookup failures to exit
// errors.
func (w *workspace) locateProject(name string) (*board.Project, error) {
	if name == "" {
		return nil, output.NewUserError("--project is required").
			WithHint("run 'taskboard tasks' to list projects")
	}
	p, err := w.repo.Locate(name)
	if err != nil {
		return nil, exitError(err)
	}
	return p, nil
}

// exitError maps domain errors to CLI exit errors with remediation hints.
// Existing exit errors pass through unchanged.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	switch {
	case errors.Is(err, board.ErrProjectNotFound):
		return output.NewUserErrorWithCause(err.Error(), err).
			WithHint("run 'taskboard tasks' to list projects")
	case errors.Is(err, board.ErrTasksFileMissing):
		return output.NewUserErrorWithCause(err.Error(), err).
			WithHint("create tasks.md with Backlog, In Progress and Completed tables")
	case errors.Is(err, board.ErrTaskNotFound):
		return output.NewUserErrorWithCause(err.Error(), err).
			WithHint("run 'taskboard tasks --project <name> --all' to see task IDs")
	case errors.Is(err, board.ErrNoTasks),
		errors.Is(err, board.ErrUnknownSection),
		errors.Is(err, board.ErrUnknownField),
		errors.Is(err, board.ErrUnknownSchema):
		return output.NewUserErrorWithCause(err.Error(), err)
	case errors.Is(err, ledger.ErrNoLedger):
		return output.NewUserErrorWithCause(err.Error(), err).
			WithHint("run 'taskboard ledger' first")
	case errors.Is(err, dispatch.ErrUnknownTool):
		return output.NewUserErrorWithCause(err.Error(), err).
			WithHint("known tools: claude, codex, gemini, jules")
	case errors.Is(err, lab.ErrConfigMissing), errors.Is(err, lab.ErrInvalidConfig):
		return output.NewUserErrorWithCause(err.Error(), err).
			WithHint("create .htdi-lab.config.json with house.id and lab.registryPath")
	case errors.Is(err, lab.ErrRegistryMissing):
		return output.NewUserErrorWithCause(err.Error(), err).
			WithHint("clone the lab repository so lab.registryPath exists")
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}
