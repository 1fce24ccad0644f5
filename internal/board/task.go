package board

import (
	"path/filepath"
	"strings"
)

// Priority is a task priority. Recognised values are normalised to their
// canonical spelling; anything else is kept verbatim and ranks last.
type Priority string

// Recognised priorities.
const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// unrankedPriority is the rank of unrecognised priorities.
const unrankedPriority = 99

var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// ParsePriority normalises s case-insensitively.
func ParsePriority(s string) Priority {
	s = strings.TrimSpace(s)
	for p := range priorityRank {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return Priority(s)
}

// Rank orders priorities: Critical 0 through Low 3, anything else 99.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return unrankedPriority
}

// Task is one row of a board table.
type Task struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Priority     Priority          `json:"priority,omitempty"`
	Status       string            `json:"status"`
	Owner        string            `json:"owner,omitempty"`
	Dependencies []string          `json:"dependencies,omitempty"`
	Effort       string            `json:"effort,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Started      string            `json:"started,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// Project is a folder holding a tasks.md board and its sessions directory.
type Project struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Path        string `json:"path"`
	TasksFile   string `json:"tasks_file"`
	SessionsDir string `json:"sessions_dir"`
}

func newProject(dir string) *Project {
	name := filepath.Base(dir)
	return &Project{
		Name:        name,
		DisplayName: DisplayName(dir),
		Path:        dir,
		TasksFile:   filepath.Join(dir, TasksFileName),
		SessionsDir: filepath.Join(dir, SessionsDirName),
	}
}

// placeholderDeps are dependency cell values meaning "none".
var placeholderDeps = map[string]bool{
	"":     true,
	"-":    true,
	"—":    true,
	"none": true,
	"n/a":  true,
}

// ParseDependencies splits a comma-separated dependency cell.
func ParseDependencies(cell string) []string {
	var deps []string
	for _, part := range strings.Split(cell, ",") {
		part = strings.TrimSpace(part)
		if placeholderDeps[strings.ToLower(part)] {
			continue
		}
		deps = append(deps, part)
	}
	return deps
}

// value returns the cell text for field.
func (t Task) value(f Field) string {
	switch f {
	case FieldID:
		return t.ID
	case FieldTitle:
		return t.Title
	case FieldDescription:
		return t.Description
	case FieldPriority:
		return string(t.Priority)
	case FieldStatus:
		return t.Status
	case FieldOwner:
		return t.Owner
	case FieldEffort:
		return t.Effort
	case FieldDependencies:
		return strings.Join(t.Dependencies, ", ")
	case FieldNotes:
		return t.Notes
	case FieldStarted:
		return t.Started
	}
	return ""
}

// set assigns a decoded cell to field.
func (t *Task) set(f Field, v string) {
	switch f {
	case FieldID:
		t.ID = v
	case FieldTitle:
		t.Title = v
	case FieldDescription:
		t.Description = v
	case FieldPriority:
		t.Priority = ParsePriority(v)
	case FieldStatus:
		// status is the section; a Status column is informational only
	case FieldOwner:
		t.Owner = v
	case FieldEffort:
		t.Effort = v
	case FieldDependencies:
		t.Dependencies = ParseDependencies(v)
	case FieldNotes:
		t.Notes = v
	case FieldStarted:
		t.Started = v
	}
}
