package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorewood/taskboard/internal/atomicfile"
	"github.com/gorewood/taskboard/internal/config"
	"github.com/gorewood/taskboard/internal/ledger"
)

const codexFallbackSummary = "Codex CLI completed without returning a final message."

// ConfirmFunc asks a yes/no question. def is the answer on empty input.
type ConfirmFunc func(question string, def bool) (bool, error)

// Result is the outcome of one tool run.
type Result struct {
	Tool    Tool   `json:"tool"`
	Path    string `json:"path,omitempty"`
	Summary string `json:"summary,omitempty"`
	Err     error  `json:"-"`
}

// OK reports whether the run succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Dispatcher runs agent CLIs for ledger tasks.
type Dispatcher struct {
	cfg     *config.Config
	runner  Runner
	logger  *log.Logger
	confirm ConfirmFunc
	now     func() time.Time
}

// New returns a Dispatcher. Without SetConfirm, over-quota runs are
// declined.
func New(cfg *config.Config, runner Runner, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{cfg: cfg, runner: runner, logger: logger, now: time.Now}
}

// SetConfirm installs the quota confirmation callback.
func (d *Dispatcher) SetConfirm(fn ConfirmFunc) { d.confirm = fn }

// SetClock replaces the time source used for quota days.
func (d *Dispatcher) SetClock(now func() time.Time) { d.now = now }

// Usage returns the usage counter for tool.
func (d *Dispatcher) Usage(tool Tool) *UsageCounter {
	return NewUsageCounter(d.cfg.UsagePath(tool.Name))
}

// Invoke runs tool on task and writes its summary file. No file is written
// when the tool is missing, fails, or the quota check declines.
func (d *Dispatcher) Invoke(ctx context.Context, tool Tool, task ledger.Entry, prompt string) (Result, error) {
	result := Result{Tool: tool}
	now := d.now()

	var usage *UsageCounter
	if tool.DailyLimit > 0 {
		usage = d.Usage(tool)
		used := usage.Count(now)
		d.logger.Info("quota", "tool", tool.Name, "used", used, "limit", tool.DailyLimit)
		if used >= tool.DailyLimit {
			if err := d.confirmOverQuota(tool); err != nil {
				return result, err
			}
		}
	}

	summary, err := d.execute(ctx, tool, task, prompt)
	if err != nil {
		return result, err
	}

	result.Path = d.cfg.RootPath(tool.Output)
	result.Summary = strings.TrimSpace(summary)
	content := fmt.Sprintf("# %s Task: %s\n\n%s\n", tool.Heading(), task.ID, result.Summary)
	if err := atomicfile.Write(result.Path, []byte(content)); err != nil {
		return result, fmt.Errorf("write %s summary: %w", tool.Heading(), err)
	}
	d.logger.Info("agent summary written", "tool", tool.Name, "path", result.Path)

	if usage != nil {
		if err := usage.Increment(now); err != nil {
			d.logger.Warn("could not record usage", "tool", tool.Name, "err", err)
		} else {
			d.logger.Info("run recorded", "tool", tool.Name, "remaining", usage.Remaining(now, tool.DailyLimit))
		}
	}
	return result, nil
}

func (d *Dispatcher) confirmOverQuota(tool Tool) error {
	declined := fmt.Errorf("%s: %w", tool.Heading(), ErrQuotaDeclined)
	if d.confirm == nil {
		return declined
	}
	question := fmt.Sprintf("Daily %s quota reached. Send task to %s anyway?", tool.Heading(), tool.Heading())
	ok, err := d.confirm(question, false)
	if err != nil {
		return err
	}
	if !ok {
		return declined
	}
	return nil
}

func (d *Dispatcher) execute(ctx context.Context, tool Tool, task ledger.Entry, prompt string) (string, error) {
	switch tool.Name {
	case KindClaude:
		args := append([]string{"--print"}, modelArgs(tool)...)
		return d.run(ctx, tool, append(args, prompt))
	case KindCodex:
		return d.runCodex(ctx, tool, prompt)
	case KindGemini:
		args := append(modelArgs(tool), "--prompt", prompt, "--output-format", "text")
		return d.run(ctx, tool, args)
	case KindJules:
		return d.run(ctx, tool, []string{"new", "--repo", d.cfg.Root, JulesDescription(task, prompt)})
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, tool.Name)
	}
}

func (d *Dispatcher) runCodex(ctx context.Context, tool Tool, prompt string) (string, error) {
	tmp, err := os.CreateTemp("", "taskboard-codex-*.md")
	if err != nil {
		return "", fmt.Errorf("create codex output file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath) //nolint:errcheck // temp cleanup

	args := append([]string{"exec"}, modelArgs(tool)...)
	args = append(args, "--output-last-message", tmpPath, prompt)
	stdout, err := d.run(ctx, tool, args)
	if err != nil {
		return "", err
	}

	if data, readErr := os.ReadFile(tmpPath); readErr == nil {
		if summary := strings.TrimSpace(string(data)); summary != "" {
			return summary, nil
		}
	}
	if stdout != "" {
		return stdout, nil
	}
	return codexFallbackSummary, nil
}

// run executes the tool binary from the board root and returns trimmed
// stdout.
func (d *Dispatcher) run(ctx context.Context, tool Tool, args []string) (string, error) {
	d.logger.Debug("running agent CLI", "tool", tool.Name, "binary", tool.Binary)
	out, err := d.runner.Run(ctx, Command{Name: tool.Binary, Args: args, Dir: d.cfg.Root})
	if err != nil {
		if errors.Is(err, ErrToolNotInstalled) {
			return "", fmt.Errorf("%s: %w (%s); install the CLI or ensure it is on PATH",
				tool.Heading(), ErrToolNotInstalled, tool.Binary)
		}
		return "", fmt.Errorf("%s: %w:\n%s", tool.Heading(), ErrToolFailed, failureDetail(out))
	}
	return strings.TrimSpace(out.Stdout), nil
}

func failureDetail(out Output) string {
	if s := strings.TrimSpace(out.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(out.Stdout); s != "" {
		return s
	}
	return "(no output)"
}

func modelArgs(tool Tool) []string {
	if tool.Model == "" {
		return nil
	}
	return []string{"--model", tool.Model}
}

// RunAll runs each tool in order and keeps going after failures. prompts
// overrides base per tool name.
func (d *Dispatcher) RunAll(ctx context.Context, tools []Tool, task ledger.Entry, base string, prompts map[string]string) []Result {
	results := make([]Result, 0, len(tools))
	for _, tool := range tools {
		prompt := base
		if p, ok := prompts[tool.Name]; ok && p != "" {
			prompt = p
		}

		d.logger.Info("starting agent", "tool", tool.Label, "task", task.ID)
		result, err := d.Invoke(ctx, tool, task, prompt)
		if err != nil {
			result.Err = err
			d.logger.Warn("agent run failed", "tool", tool.Label, "workflow", tool.Workflow, "err", err)
		}
		results = append(results, result)
	}
	return results
}

// Succeeded counts successful results.
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.OK() {
			n++
		}
	}
	return n
}
