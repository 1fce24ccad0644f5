package ledger

import (
	"sort"
	"strings"

	"github.com/gorewood/taskboard/internal/board"
)

// Columns is the fixed ledger table layout.
var Columns = []string{"Project", "Status", "ID", "Title", "Description", "Priority", "Owner", "Notes"}

// Entry is an open task projected with its project's display name.
type Entry struct {
	Project     string `json:"project"`
	Status      string `json:"status"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ShortLabel is a one-line description used in selection menus.
func (e Entry) ShortLabel() string {
	priority := e.Priority
	if priority == "" {
		priority = "n/a"
	}
	label := "[" + priority + "] " + e.ID + ": " + e.Title
	if e.Notes != "" {
		label += " · " + e.Notes
	}
	return label
}

var statusRank = map[string]int{
	board.StatusInProgress: 0,
	board.StatusBacklog:    1,
}

func rankStatus(status string) int {
	for name, rank := range statusRank {
		if strings.EqualFold(name, status) {
			return rank
		}
	}
	return 99
}

// Sort orders entries by lowercase project, then In Progress before
// Backlog, then ID.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if pa, pb := strings.ToLower(a.Project), strings.ToLower(b.Project); pa != pb {
			return pa < pb
		}
		if ra, rb := rankStatus(a.Status), rankStatus(b.Status); ra != rb {
			return ra < rb
		}
		return a.ID < b.ID
	})
}

// GroupByProject buckets entries by project, in Sort order.
func GroupByProject(entries []Entry) (projects []string, groups map[string][]Entry) {
	groups = make(map[string][]Entry)
	for _, e := range entries {
		if _, ok := groups[e.Project]; !ok {
			projects = append(projects, e.Project)
		}
		groups[e.Project] = append(groups[e.Project], e)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return strings.ToLower(projects[i]) < strings.ToLower(projects[j])
	})
	return projects, groups
}
