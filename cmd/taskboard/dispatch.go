package main

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/gorewood/taskboard/internal/dispatch"
	"github.com/gorewood/taskboard/internal/interact"
	"github.com/gorewood/taskboard/internal/output"
)

// dispatchFlags holds flags for the dispatch command.
type dispatchFlags struct {
	task     string
	tools    []string
	yes      bool
	triage   string
	generate bool
}

// newDispatchCmd creates the dispatch command.
func newDispatchCmd() *cobra.Command {
	var flags dispatchFlags
	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Run external agent CLIs on a ledger task",
		Long: `Send an open task from agents/OPENTASKS.md to one or more agent CLIs.

Each tool runs in turn from the board root; a failure is reported and the
next tool still runs. Successful runs write a summary file per tool. API
keys in <root>/.env are added to the agents' environment unless already
set.

Jules has a soft daily quota. Past the quota the run asks for confirmation
on a terminal, proceeds with --yes, and is skipped otherwise.

Exits with code 4 when no tool succeeded.

Examples:
  taskboard dispatch --task WBR-001 --tools claude
  taskboard dispatch --task WBR-001 --tools claude,gemini --triage bug-hunt
  taskboard dispatch --task WBR-001 --tools jules --yes --generate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDispatch(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.task, "task", "t", "", "Ledger task ID")
	cmd.Flags().StringSliceVar(&flags.tools, "tools", nil, "Agent tools to run: claude, codex, gemini, jules")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Run past soft quotas without asking")
	cmd.Flags().StringVar(&flags.triage, "triage", "", "Gemini triage template key to prepend")
	cmd.Flags().BoolVar(&flags.generate, "generate", false, "Refresh the ledger, sitemap and generator scripts after a success")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("tools")
	return cmd
}

func runDispatch(cmd *cobra.Command, flags dispatchFlags) error {
	printer := newPrinter(cmd)

	ws, err := loadWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	tools, err := dispatch.Resolve(ws.cfg, flags.tools)
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	entries, ledgerText, err := ws.readLedger()
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	task, err := findLedgerTask(entries, flags.task)
	if err != nil {
		printer.Error(err)
		return err
	}

	base := dispatch.ComposePrompt(task, ledgerText)
	prompts := map[string]string{}
	if flags.triage != "" {
		if !slices.ContainsFunc(tools, func(t dispatch.Tool) bool { return t.Name == dispatch.KindGemini }) {
			err := output.NewUserError("--triage applies to gemini, which is not selected")
			printer.Error(err)
			return err
		}
		tmpl, err := ws.triageTemplate(flags.triage)
		if err != nil {
			err = exitError(err)
			printer.Error(err)
			return err
		}
		prompts[dispatch.KindGemini] = dispatch.PrependTriage(base, tmpl)
	}

	runner, err := ws.agentRunner()
	if err != nil {
		err = exitError(err)
		printer.Error(err)
		return err
	}
	d := dispatch.New(ws.cfg, runner, ws.logger)
	switch {
	case flags.yes:
		d.SetConfirm(func(string, bool) (bool, error) { return true, nil })
	case !printer.IsJSON() && output.IsInteractive(cmd.InOrStdin()):
		d.SetConfirm(interact.New(cmd.InOrStdin(), cmd.ErrOrStderr()).Confirm)
	}

	results := d.RunAll(cmd.Context(), tools, task, base, prompts)

	var failedGens []string
	if flags.generate && dispatch.Succeeded(results) > 0 {
		failedGens = dispatch.RunGenerators(cmd.Context(), ws.generators(runner), ws.logger)
	}
	return reportResults(printer, ws, task, results, failedGens)
}
