package board

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorewood/taskboard/internal/atomicfile"
	"github.com/gorewood/taskboard/internal/config"
	"github.com/gorewood/taskboard/internal/mdtable"
)

// File layout inside a project directory.
const (
	TasksFileName   = "tasks.md"
	SessionsDirName = "sessions"
)

// DateLayout formats date cells written by Move.
const DateLayout = "2006-01-02"

// Repository gives access to every project board under a config root.
type Repository struct {
	cfg    *config.Config
	logger *log.Logger
}

// NewRepository returns a Repository over cfg. A nil logger discards output.
func NewRepository(cfg *config.Config, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Repository{cfg: cfg, logger: logger}
}

// Config returns the configuration the repository was built with.
func (r *Repository) Config() *config.Config {
	return r.cfg
}

// Locate resolves a project by folder name and requires its tasks file.
func (r *Repository) Locate(name string) (*Project, error) {
	p, err := r.Folder(name)
	if err != nil {
		return nil, err
	}
	if !p.HasTasksFile() {
		return nil, fmt.Errorf("%w: %s", ErrTasksFileMissing, p.TasksFile)
	}
	return p, nil
}

// Folder resolves a project folder that may not have a tasks file yet.
func (r *Repository) Folder(name string) (*Project, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	dir := filepath.Join(r.cfg.ProjectsDir(), name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return newProject(dir), nil
}

// Projects lists project folders in name order, skipping dot-directories.
// Projects without a tasks file are included; check HasTasksFile.
func (r *Repository) Projects() ([]*Project, error) {
	entries, err := os.ReadDir(r.cfg.ProjectsDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	var projects []*Project
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		projects = append(projects, newProject(filepath.Join(r.cfg.ProjectsDir(), e.Name())))
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// HasTasksFile reports whether the project has a tasks.md.
func (p *Project) HasTasksFile() bool {
	info, err := os.Stat(p.TasksFile)
	return err == nil && !info.IsDir()
}

// Schema resolves the table schema for a project.
func (r *Repository) Schema(p *Project) (Schema, error) {
	return SchemaFor(r.cfg.ProjectSchema(p.Name), r.cfg.Sections)
}

// ListTasks decodes every row in the schema's sections. Rows without an ID
// are skipped.
func (r *Repository) ListTasks(p *Project) ([]Task, error) {
	return r.ListSections(p, nil)
}

// ListSections reads the named sections, which may lie outside the
// schema's own list (a legacy board's In Progress table, say). A nil filter
// reads every section the schema knows.
func (r *Repository) ListSections(p *Project, only []string) ([]Task, error) {
	schema, err := r.Schema(p)
	if err != nil {
		return nil, err
	}
	doc, err := r.read(p)
	if err != nil {
		return nil, err
	}

	sections := schema.Sections
	if only != nil {
		sections = nil
		for _, section := range r.Sections(schema) {
			if containsFold(only, section) {
				sections = append(sections, section)
			}
		}
	}

	var tasks []Task
	for _, section := range sections {
		for _, table := range doc.SectionTables(section) {
			for _, row := range table.Rows {
				t := schema.Decode(section, table.Headers, row)
				if t.ID == "" {
					r.logger.Debug("skipping row without id", "project", p.Name, "section", section)
					continue
				}
				tasks = append(tasks, t)
			}
		}
	}
	return tasks, nil
}

// MoveOptions tune the row written by Move.
type MoveOptions struct {
	// Owner replaces the row owner. Empty keeps the existing owner, or the
	// configured placeholder when the row has none.
	Owner string
	// Notes replaces the row notes. Empty keeps existing notes, or the
	// configured default when the destination has a notes column.
	Notes string
	// Now stamps date columns; zero means time.Now().
	Now time.Time
}

// located is a row found on a board. A section may hold several tables,
// for instance one per "###" sub-heading; table is the one holding the row.
type located struct {
	section string
	table   mdtable.Table
	headers []string
	rows    []mdtable.Row
	index   int
}

// Move relocates a task row to the top of the dest section's first table and
// writes the document back. A missing ID returns ErrTaskNotFound and leaves
// the file untouched.
func (r *Repository) Move(p *Project, id, dest string, opts MoveOptions) (Task, error) {
	schema, err := r.Schema(p)
	if err != nil {
		return Task{}, err
	}
	destSection, ok := r.canonicalSection(schema, dest)
	if !ok {
		return Task{}, fmt.Errorf("%w: %q", ErrUnknownSection, dest)
	}
	doc, err := r.read(p)
	if err != nil {
		return Task{}, err
	}
	loc, ok := r.find(doc, schema, id)
	if !ok {
		return Task{}, fmt.Errorf("%w: %s in %s", ErrTaskNotFound, id, p.Name)
	}
	task := schema.Decode(loc.section, loc.headers, loc.rows[loc.index])

	if strings.EqualFold(loc.section, destSection) {
		return task, nil
	}

	remaining := append(loc.rows[:loc.index:loc.index], loc.rows[loc.index+1:]...)
	if err := doc.ReplaceTable(loc.table, loc.headers, remaining); err != nil {
		return Task{}, err
	}

	destHeaders, destRows := doc.SectionTable(destSection)
	if len(destHeaders) == 0 {
		destHeaders = schema.Headers(destSection)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	task.Status = destSection
	task.Started = now.Format(DateLayout)
	switch {
	case opts.Owner != "":
		task.Owner = opts.Owner
	case task.Owner == "":
		task.Owner = r.cfg.DefaultOwner
	}
	if opts.Notes != "" {
		task.Notes = opts.Notes
	} else if _, hasNotes := schema.header(destSection, destHeaders, FieldNotes); hasNotes && task.Notes == "" {
		task.Notes = r.cfg.DefaultNotes
	}

	newRow := schema.Encode(destSection, destHeaders, task)
	destRows = append([]mdtable.Row{newRow}, destRows...)
	if err := doc.ReplaceSectionTable(destSection, destHeaders, destRows); err != nil {
		return Task{}, err
	}

	if err := r.write(p, doc); err != nil {
		return Task{}, err
	}
	r.logger.Info("moved task", "project", p.Name, "task", id, "from", loc.section, "to", destSection)
	return task, nil
}

// UpdateField rewrites one cell of a task row in place. Status is the
// section a row lives in, so updating "status" is a Move.
func (r *Repository) UpdateField(p *Project, id, field, value string) (Task, error) {
	schema, err := r.Schema(p)
	if err != nil {
		return Task{}, err
	}
	f, ok := schema.FieldForHeader(field)
	if !ok {
		return Task{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if f == FieldStatus {
		return r.Move(p, id, value, MoveOptions{})
	}
	if f == FieldID {
		return Task{}, fmt.Errorf("%w: identifiers cannot be rewritten", ErrUnknownField)
	}

	doc, err := r.read(p)
	if err != nil {
		return Task{}, err
	}
	loc, ok := r.find(doc, schema, id)
	if !ok {
		return Task{}, fmt.Errorf("%w: %s in %s", ErrTaskNotFound, id, p.Name)
	}
	header, ok := schema.header(loc.section, loc.headers, f)
	if !ok {
		return Task{}, fmt.Errorf("%w: %s section has no %s column", ErrUnknownField, loc.section, f)
	}

	loc.rows[loc.index][header] = strings.TrimSpace(value)
	if err := doc.ReplaceTable(loc.table, loc.headers, loc.rows); err != nil {
		return Task{}, err
	}
	if err := r.write(p, doc); err != nil {
		return Task{}, err
	}
	r.logger.Info("updated task", "project", p.Name, "task", id, "field", f)
	return schema.Decode(loc.section, loc.headers, loc.rows[loc.index]), nil
}

// Sections returns the board vocabulary: configured sections plus any the
// schema reads that are not configured.
func (r *Repository) Sections(schema Schema) []string {
	out := append([]string(nil), r.cfg.Sections...)
	for _, s := range schema.Sections {
		if !containsFold(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func (r *Repository) canonicalSection(schema Schema, name string) (string, bool) {
	for _, s := range r.Sections(schema) {
		if strings.EqualFold(strings.TrimSpace(name), s) {
			return s, true
		}
	}
	return "", false
}

func (r *Repository) find(doc *mdtable.Document, schema Schema, id string) (located, bool) {
	for _, section := range r.Sections(schema) {
		for _, table := range doc.SectionTables(section) {
			for i, row := range table.Rows {
				if schema.rowID(section, table.Headers, row) == id {
					return located{section: section, table: table, headers: table.Headers, rows: table.Rows, index: i}, true
				}
			}
		}
	}
	return located{}, false
}

func (r *Repository) read(p *Project) (*mdtable.Document, error) {
	data, err := os.ReadFile(p.TasksFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTasksFileMissing, p.TasksFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.TasksFile, err)
	}
	return mdtable.NewDocument(string(data)), nil
}

func (r *Repository) write(p *Project, doc *mdtable.Document) error {
	if err := atomicfile.WriteMarkdown(p.TasksFile, doc.String()); err != nil {
		return fmt.Errorf("writing %s: %w", p.TasksFile, err)
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
