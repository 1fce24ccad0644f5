package ledger

import (
	"fmt"

	"github.com/gorewood/taskboard/internal/board"
)

// openSections are the sections the ledger reads.
var openSections = []string{board.StatusBacklog, board.StatusInProgress}

// Collect gathers Backlog and In Progress tasks from every project with a
// tasks file, sorted.
func Collect(repo *board.Repository) ([]Entry, error) {
	projects, err := repo.Projects()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, p := range projects {
		if !p.HasTasksFile() {
			continue
		}
		tasks, err := repo.ListSections(p, openSections)
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", p.Name, err)
		}
		for _, t := range tasks {
			entries = append(entries, Entry{
				Project:     p.DisplayName,
				Status:      t.Status,
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Priority:    string(t.Priority),
				Owner:       t.Owner,
				Notes:       t.Notes,
			})
		}
	}
	Sort(entries)
	return entries, nil
}
