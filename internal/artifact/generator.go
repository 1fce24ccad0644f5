package artifact

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorewood/taskboard/internal/atomicfile"
	"github.com/gorewood/taskboard/internal/board"
	"github.com/gorewood/taskboard/internal/config"
)

// Timestamp layouts used in generated filenames and bodies.
const (
	sessionStampLayout = "20060102-150405"
	workingStampLayout = "2006-01-02T15-04"
	startedLayout      = "2006-01-02 15:04:05"
)

// Generator writes artifacts into project sessions directories.
type Generator struct {
	cfg    *config.Config
	repo   *board.Repository
	loader *Loader
	logger *log.Logger
	now    func() time.Time
}

// NewGenerator returns a Generator. Templates resolve through the board's
// templates dir and config.Dir()/templates.
func NewGenerator(cfg *config.Config, repo *board.Repository, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	globalDir := ""
	if dir := config.Dir(); dir != "" {
		globalDir = filepath.Join(dir, "templates")
	}
	return &Generator{
		cfg:    cfg,
		repo:   repo,
		loader: NewLoader(cfg.TemplatesDir(), globalDir),
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the time source.
func (g *Generator) SetClock(now func() time.Time) {
	g.now = now
}

// SessionLog writes sessions/<stamp>-<id>.md and returns its path.
func (g *Generator) SessionLog(p *board.Project, task board.Task) (string, error) {
	now := g.now()
	owner := task.Owner
	if owner == "" {
		owner = g.cfg.DefaultOwner
	}
	vars := g.taskVars(p, task)
	vars["started"] = now.Format(startedLayout)
	vars["owner"] = owner
	vars["tasks_file"] = g.relative(p.TasksFile)

	name := fmt.Sprintf("%s-%s.md", now.Format(sessionStampLayout), task.ID)
	return g.write(p, TemplateSessionLog, name, vars, true)
}

// ImplementationPrompt writes sessions/<id>-prompt.md. The file-location
// block comes from the project's hint table and is omitted when nothing
// matches; the architecture pointer appears only when archDoc exists.
func (g *Generator) ImplementationPrompt(p *board.Project, task board.Task, archDoc string) (string, error) {
	vars := g.taskVars(p, task)
	vars["file_hints"] = fileHintsBlock(SuggestFiles(g.cfg.Project(p.Name).Hints, task.ID))
	vars["architecture"] = g.architectureBlock(archDoc)

	return g.write(p, TemplatePrompt, task.ID+"-prompt.md", vars, false)
}

// WorkingSession writes sessions/<stamp>-session.md for a free-form session.
func (g *Generator) WorkingSession(p *board.Project, title string, taskIDs []string) (string, error) {
	now := g.now()
	if strings.TrimSpace(title) == "" {
		title = "Working Session"
	}
	vars := map[string]string{
		"date":            now.Format(board.DateLayout),
		"start_time":      now.Format("15:04"),
		"title":           title,
		"project":         p.Name,
		"project_display": p.DisplayName,
		"tasks":           strings.Join(taskIDs, ", "),
	}
	return g.write(p, TemplateWorkingSession, now.Format(workingStampLayout)+"-session.md", vars, true)
}

// Bundle is the result of ExecutionBundle.
type Bundle struct {
	Task       board.Task `json:"task"`
	SessionLog string     `json:"session_log"`
	Prompt     string     `json:"prompt"`
	Moved      bool       `json:"moved"`
	Warning    string     `json:"warning,omitempty"`
}

// ExecutionBundle writes the session log and prompt, then moves the task to
// In Progress. Artifacts are not rolled back when the move fails; the
// failure is reported in Bundle.Warning.
func (g *Generator) ExecutionBundle(p *board.Project, task board.Task, opts board.MoveOptions) (*Bundle, error) {
	bundle := &Bundle{Task: task}

	logPath, err := g.SessionLog(p, task)
	if err != nil {
		return nil, err
	}
	bundle.SessionLog = logPath

	promptPath, err := g.ImplementationPrompt(p, task, g.cfg.Project(p.Name).ArchDoc)
	if err != nil {
		return bundle, err
	}
	bundle.Prompt = promptPath

	if opts.Now.IsZero() {
		opts.Now = g.now()
	}
	moved, err := g.repo.Move(p, task.ID, board.StatusInProgress, opts)
	if err != nil {
		bundle.Warning = fmt.Sprintf("artifacts created but %s was not moved to %s: %v", task.ID, board.StatusInProgress, err)
		g.logger.Warn("move failed", "task", task.ID, "err", err)
		return bundle, nil
	}
	bundle.Task = moved
	bundle.Moved = true
	return bundle, nil
}

func (g *Generator) taskVars(p *board.Project, task board.Task) map[string]string {
	deps := "None"
	if len(task.Dependencies) > 0 {
		deps = strings.Join(task.Dependencies, ", ")
	}
	return map[string]string{
		"id":              task.ID,
		"title":           task.Title,
		"description":     orDefault(task.Description, "_No description provided._"),
		"priority":        orDefault(string(task.Priority), "n/a"),
		"effort":          orDefault(task.Effort, "n/a"),
		"dependencies":    deps,
		"project":         p.Name,
		"project_display": p.DisplayName,
	}
}

func (g *Generator) architectureBlock(archDoc string) string {
	if archDoc == "" {
		return ""
	}
	path := g.cfg.RootPath(archDoc)
	if _, err := os.Stat(path); err != nil {
		g.logger.Debug("architecture doc not found", "path", path)
		return ""
	}
	return "## Architecture Reference\n\nPlease refer to `" + g.relative(path) + "` for the detailed architecture."
}

func fileHintsBlock(files []string) string {
	if len(files) == 0 {
		return ""
	}
	lines := []string{"## Suggested File Locations", ""}
	for _, f := range files {
		lines = append(lines, "- `"+f+"`")
	}
	return strings.Join(lines, "\n")
}

// write renders a template into the sessions dir. With unique set, an
// existing file gets a -1, -2, ... suffix before the extension; otherwise
// it is overwritten.
func (g *Generator) write(p *board.Project, tmplName, filename string, vars map[string]string, unique bool) (string, error) {
	tmpl, err := g.loader.Load(tmplName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.SessionsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating sessions directory: %w", err)
	}

	path := filepath.Join(p.SessionsDir, filename)
	if unique {
		path = uniquePath(path)
	}
	if err := atomicfile.WriteMarkdown(path, Render(tmpl, vars)); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	g.logger.Debug("wrote artifact", "template", tmplName, "source", tmpl.Source, "path", path)
	return path, nil
}

// uniquePath appends -1, -2, ... before the extension until path is free.
func uniquePath(path string) string {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate
		}
	}
}

func (g *Generator) relative(path string) string {
	if rel, err := filepath.Rel(g.cfg.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
