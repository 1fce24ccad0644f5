package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/dispatch"
	"github.com/gorewood/taskboard/internal/interact"
	"github.com/gorewood/taskboard/internal/ledger"
	"github.com/gorewood/taskboard/internal/output"
)

// Main menu entries, in display order.
var runMenu = []string{
	"Run agents on a ledger task",
	"Prepare a task (session log, prompt, move to In Progress)",
	"Print workflow summary",
	"Quit",
}

const (
	menuAgents = iota
	menuPrepare
	menuWorkflows
	menuQuit
)

// session is one interactive run.
type session struct {
	ws      *workspace
	printer *output.Printer
	prompt  *interact.Prompter
}

// newRunCmd creates the run command.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Interactive menu for agents and tasks",
		Long: `Open an interactive menu over the open tasks ledger.

From the menu you can run agent CLIs on a ledger task, prepare a task for
an agent (session log, prompt, move to In Progress), or print the agent
workflow summary. Press Enter at a selection to go back; end of input
quits.

Examples:
  taskboard run`,
		RunE: runRun,
	}
}

func runRun(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	if printer.IsJSON() {
		err := output.NewUserError("run is interactive and does not support --json")
		printer.Error(err)
		return err
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	s := &session{
		ws:      ws,
		printer: printer,
		prompt:  interact.New(cmd.InOrStdin(), cmd.OutOrStdout()),
	}

	entries, err := s.entries()
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	s.catalog(entries)

	for {
		choice, err := s.prompt.Choose("\nTaskboard", runMenu)
		if err != nil || choice == menuQuit {
			return quitErr(err)
		}

		switch choice {
		case menuAgents:
			err = s.runAgents(cmd.Context())
		case menuPrepare:
			err = s.prepareTask()
		case menuWorkflows:
			err = printWorkflowSummary(printer, ws)
		}
		if err == nil || errors.Is(err, interact.ErrCancelled) {
			continue
		}
		err = exitError(err)
		printer.Error(err)
		if output.GetExitCode(err) == output.ExitSystemError {
			return err
		}
	}
}

// quitErr treats cancellation as a normal exit.
func quitErr(err error) error {
	if errors.Is(err, interact.ErrCancelled) {
		return nil
	}
	return err
}

// entries reads the ledger, generating it first when missing.
func (s *session) entries() ([]ledger.Entry, error) {
	entries, _, err := s.ws.readLedger()
	if errors.Is(err, ledger.ErrNoLedger) {
		s.ws.logger.Info("ledger missing, generating", "path", s.ws.relative(s.ws.cfg.LedgerPath()))
		return s.ws.writeLedger(time.Now())
	}
	return entries, err
}

func (s *session) catalog(entries []ledger.Entry) {
	if len(entries) == 0 {
		s.printer.Println(ledger.Placeholder)
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Project, e.Status, e.ID, e.Title, orNA(e.Priority), e.Owner})
	}
	s.printer.Table("Open Tasks", []string{"Project", "Status", "ID", "Title", "Priority", "Owner"}, rows)
}

// selectTask asks for a project (or all projects), then a task.
func (s *session) selectTask(entries []ledger.Entry) (ledger.Entry, error) {
	projects, groups := ledger.GroupByProject(entries)
	options := append([]string{"All projects"}, projects...)
	choice, err := s.prompt.Choose("Projects", options)
	if err != nil {
		return ledger.Entry{}, err
	}

	filtered := entries
	title := "Tasks in all projects"
	if choice > 0 {
		filtered = groups[projects[choice-1]]
		title = "Tasks in " + projects[choice-1]
	}
	if len(filtered) == 0 {
		s.printer.Warn("No tasks found for that selection.")
		return ledger.Entry{}, interact.ErrCancelled
	}

	labels := make([]string, len(filtered))
	for i, e := range filtered {
		labels[i] = e.ShortLabel()
	}
	idx, err := s.prompt.Choose(title, labels)
	if err != nil {
		return ledger.Entry{}, err
	}
	return filtered[idx], nil
}

// runAgents walks tool selection, task selection, optional Gemini triage,
// the agent runs and the follow-up generators.
func (s *session) runAgents(ctx context.Context) error {
	tools := dispatch.Tools(s.ws.cfg)
	labels := make([]string, len(tools))
	for i, t := range tools {
		labels[i] = t.Label
	}
	picked, err := s.prompt.ChooseMany("Agents", labels, dispatch.ParseSelection)
	if err != nil || len(picked) == 0 {
		return err
	}
	selected := make([]dispatch.Tool, len(picked))
	for i, idx := range picked {
		selected[i] = tools[idx]
	}

	entries, ledgerText, err := s.ws.readLedger()
	if err != nil {
		return exitError(err)
	}
	task, err := s.selectTask(entries)
	if err != nil {
		return err
	}
	s.printer.Panel("Task Selected", fmt.Sprintf("%s • %s\nPriority: %s  Owner: %s\nNotes: %s",
		task.ID, task.Title, orNA(task.Priority), orDash(task.Owner), orNone(task.Notes)))

	base := dispatch.ComposePrompt(task, ledgerText)
	prompts := map[string]string{}
	for _, t := range selected {
		if t.Name == dispatch.KindGemini {
			if triaged, ok := s.triage(base); ok {
				prompts[dispatch.KindGemini] = triaged
			}
		}
	}

	runner, err := s.ws.agentRunner()
	if err != nil {
		return exitError(err)
	}
	d := dispatch.New(s.ws.cfg, runner, s.ws.logger)
	d.SetConfirm(s.prompt.Confirm)
	results := d.RunAll(ctx, selected, task, base, prompts)

	var failedGens []string
	if dispatch.Succeeded(results) > 0 {
		failedGens, err = s.generators(ctx, runner)
		if err != nil && !errors.Is(err, interact.ErrCancelled) {
			return err
		}
	}
	// reportResults prints the zero-success error; the menu carries on.
	_ = reportResults(s.printer, s.ws, task, results, failedGens)
	return nil
}

// triage offers the Gemini triage templates and returns the prompt with
// the chosen one prepended.
func (s *session) triage(base string) (string, bool) {
	path := s.ws.cfg.TriageLibraryPath()
	templates, err := dispatch.LoadTriageLibrary(path)
	if err != nil {
		s.printer.Warn("Could not parse %s: %v", s.ws.relative(path), err)
		return "", false
	}
	if len(templates) == 0 {
		s.printer.Warn("No Gemini triage templates found (%s). Using base prompt.", s.ws.relative(path))
		return "", false
	}

	titles := make([]string, len(templates))
	for i, t := range templates {
		titles[i] = t.Title + " - " + t.Description
	}
	idx, err := s.prompt.Choose("Gemini triage workflows", titles)
	if err != nil {
		s.printer.Warn("Gemini triage workflow skipped.")
		return "", false
	}
	chosen := templates[idx]
	s.printer.Panel(chosen.Title, chosen.Script)
	return dispatch.PrependTriage(base, chosen), true
}

// generators offers the post-run generators and runs the selected ones.
func (s *session) generators(ctx context.Context, runner dispatch.Runner) ([]string, error) {
	gens := s.ws.generators(runner)
	names := make([]string, len(gens))
	for i, g := range gens {
		names[i] = g.Name
	}
	picked, err := s.prompt.ChooseMany("Generators", names, dispatch.ParseSelection)
	if err != nil || len(picked) == 0 {
		return nil, err
	}
	chosen := make([]dispatch.Generator, len(picked))
	for i, idx := range picked {
		chosen[i] = gens[idx]
	}
	failed := dispatch.RunGenerators(ctx, chosen, s.ws.logger)
	for _, g := range chosen {
		if !slices.Contains(failed, g.Name) {
			s.printer.Done("Ran %s", g.Name)
		}
	}
	return failed, nil
}

// prepareTask asks for a project, a task ID (empty auto-picks) and an
// owner, then writes the execution bundle.
func (s *session) prepareTask() error {
	projects, err := s.ws.repo.Projects()
	if err != nil {
		return exitError(err)
	}
	var names []string
	for _, p := range projects {
		if p.HasTasksFile() {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		s.printer.Warn("No projects with a tasks file in %s", s.ws.relative(s.ws.cfg.ProjectsDir()))
		return nil
	}
	choice, err := s.prompt.Choose("Projects", names)
	if err != nil {
		return err
	}
	id, err := s.prompt.Ask("Task ID (Enter to auto-pick)", "")
	if err != nil {
		return err
	}
	owner, err := s.prompt.Ask("Agent codename", s.ws.cfg.DefaultOwner)
	if err != nil {
		return err
	}

	p, err := s.ws.locateProject(names[choice])
	if err != nil {
		return err
	}
	bundle, err := s.ws.prepare(p, executeFlags{project: p.Name, task: id, autoPick: id == "", owner: owner})
	if err != nil {
		return err
	}
	if bundle == nil {
		s.printer.Println("No tasks available to pick")
		return nil
	}
	printBundle(s.printer, s.ws, p, bundle)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
