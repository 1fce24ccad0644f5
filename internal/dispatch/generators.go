package dispatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gorewood/taskboard/internal/config"
)

// Generator refreshes a derived document after agent runs.
type Generator struct {
	Name string
	Run  func(ctx context.Context) error
}

// ScriptGenerators wraps cfg.Generators as interpreter-run scripts,
// resolved relative to the board root.
func ScriptGenerators(cfg *config.Config, runner Runner) []Generator {
	gens := make([]Generator, 0, len(cfg.Generators))
	for _, script := range cfg.Generators {
		script := strings.TrimSpace(script)
		if script == "" {
			continue
		}
		gens = append(gens, Generator{
			Name: filepath.Base(script),
			Run: func(ctx context.Context) error {
				out, err := runner.Run(ctx, Command{
					Name: cfg.Interpreter,
					Args: []string{cfg.RootPath(script)},
					Dir:  cfg.Root,
				})
				if err != nil {
					return fmt.Errorf("generator %s: %w: %s", script, err, failureDetail(out))
				}
				return nil
			},
		})
	}
	return gens
}

// RunGenerators runs each generator in order, logging failures and
// continuing. It returns the names that failed.
func RunGenerators(ctx context.Context, gens []Generator, logger *log.Logger) []string {
	var failed []string
	for _, g := range gens {
		if logger != nil {
			logger.Info("running generator", "name", g.Name)
		}
		if err := g.Run(ctx); err != nil {
			failed = append(failed, g.Name)
			if logger != nil {
				logger.Warn("generator failed", "name", g.Name, "err", err)
			}
		}
	}
	return failed
}
