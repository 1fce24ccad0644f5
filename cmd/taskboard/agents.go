package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/dispatch"
	"github.com/gorewood/taskboard/internal/envfile"
	"github.com/gorewood/taskboard/internal/ledger"
	"github.com/gorewood/taskboard/internal/output"
)

// envFileName holds API keys for agent CLIs, relative to the board root.
const envFileName = ".env"

// newRunner builds the process runner for agent CLIs. Replaced in tests.
var newRunner = func(env []string) dispatch.Runner {
	return dispatch.ExecRunner{Env: env}
}

// resultView is the printable form of a dispatch.Result.
type resultView struct {
	Tool    string `json:"tool"`
	Label   string `json:"label"`
	OK      bool   `json:"ok"`
	Path    string `json:"path,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// agentRunner returns a runner whose environment is the process
// environment plus <root>/.env.
func (w *workspace) agentRunner() (dispatch.Runner, error) {
	vars, err := envfile.Read(w.cfg.RootPath(envFileName))
	if err != nil {
		return nil, err
	}
	if len(vars) > 0 {
		w.logger.Debug("loaded agent environment", "file", envFileName, "keys", len(vars))
	}
	return newRunner(envfile.Merge(os.Environ(), vars)), nil
}

// readLedger returns the ledger entries and raw text.
func (w *workspace) readLedger() ([]ledger.Entry, string, error) {
	data, err := os.ReadFile(w.cfg.LedgerPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("%w: %s", ledger.ErrNoLedger, w.relative(w.cfg.LedgerPath()))
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading ledger: %w", err)
	}
	text := string(data)
	return ledger.Parse(text), text, nil
}

// triageTemplate finds key in the Gemini triage library.
func (w *workspace) triageTemplate(key string) (dispatch.TriageTemplate, error) {
	templates, err := dispatch.LoadTriageLibrary(w.cfg.TriageLibraryPath())
	if err != nil {
		return dispatch.TriageTemplate{}, err
	}
	for _, t := range templates {
		if t.Key == key {
			return t, nil
		}
	}
	return dispatch.TriageTemplate{}, output.NewUserError(fmt.Sprintf("unknown triage template %q", key)).
		WithHint("templates live in " + w.relative(w.cfg.TriageLibraryPath()))
}

// findLedgerTask looks up id among entries.
func findLedgerTask(entries []ledger.Entry, id string) (ledger.Entry, error) {
	entry, ok := ledger.Find(entries, id)
	if !ok {
		return ledger.Entry{}, exitError(fmt.Errorf("%w: %s in the open tasks ledger", board.ErrTaskNotFound, id))
	}
	return entry, nil
}

// reportResults prints per-tool outcomes and failed generators. When no
// tool succeeded it returns an exit-code-4 error; in human mode the error
// is printed too.
func reportResults(printer *output.Printer, ws *workspace, task ledger.Entry, results []dispatch.Result, failedGens []string) error {
	views := make([]resultView, 0, len(results))
	var errs []error
	for _, r := range results {
		v := resultView{Tool: r.Tool.Name, Label: r.Tool.Label, OK: r.OK(), Summary: r.Summary}
		if r.Path != "" {
			v.Path = ws.relative(r.Path)
		}
		if r.Err != nil {
			v.Error = r.Err.Error()
			errs = append(errs, r.Err)
		}
		views = append(views, v)
	}

	var err error
	if dispatch.Succeeded(results) == 0 {
		err = output.NewDispatchError("no agent runs succeeded", errors.Join(errs...)).
			WithHint("fix the issues above and try again")
	}

	if printer.IsJSON() {
		if failedGens == nil {
			failedGens = []string{}
		}
		if jsonErr := printer.Success(map[string]any{
			"task":              task.ID,
			"results":           views,
			"succeeded":         dispatch.Succeeded(results),
			"failed_generators": failedGens,
		}); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	for i, v := range views {
		if v.OK {
			printer.Done("%s: summary written to %s", v.Label, v.Path)
			continue
		}
		printer.Panel(v.Label+" failed", fmt.Sprintf("%s\nSee %s for the reference workflow.", v.Error, results[i].Tool.Workflow))
	}
	for _, name := range failedGens {
		printer.Warn("generator %s failed", name)
	}
	if err != nil {
		printer.Error(err)
	}
	return err
}
