package ledger

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gorewood/taskboard/internal/atomicfile"
	"github.com/gorewood/taskboard/internal/mdtable"
)

// Title is the ledger's top-level heading.
const Title = "# Open Tasks Ledger"

// Placeholder replaces the table when no open tasks exist.
const Placeholder = "No open tasks found. Update `tasks.md` files to populate this view."

// Footer marks the document as generated.
const Footer = "> Generated via `taskboard ledger`."

// ErrNoLedger is returned by Read when the ledger file does not exist.
var ErrNoLedger = errors.New("ledger not found")

// Render builds the full ledger document.
func Render(entries []Entry, now time.Time) string {
	lines := []string{
		Title,
		"",
		"_Last updated: " + now.Format("2006-01-02") + "_",
		"",
	}

	if len(entries) == 0 {
		lines = append(lines, Placeholder)
		return mdtable.Normalize(strings.Join(lines, "\n"))
	}

	rows := make([]mdtable.Row, len(entries))
	for i, e := range entries {
		rows[i] = mdtable.Row{
			"Project":     e.Project,
			"Status":      e.Status,
			"ID":          e.ID,
			"Title":       e.Title,
			"Description": e.Description,
			"Priority":    e.Priority,
			"Owner":       e.Owner,
			"Notes":       e.Notes,
		}
	}
	// Columns is never empty, so Render cannot fail here.
	table, _ := mdtable.Render(rows, Columns)
	lines = append(lines, table, "", Footer)
	return mdtable.Normalize(strings.Join(lines, "\n"))
}

// Write replaces the ledger file atomically.
func Write(path, doc string) error {
	if err := atomicfile.WriteMarkdown(path, doc); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// Read parses a ledger back into entries. A ledger without a table yields
// no entries and no error.
func Read(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoLedger, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse decodes ledger text.
func Parse(text string) []Entry {
	_, rows := mdtable.Parse(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
	var entries []Entry
	for _, r := range rows {
		if r["ID"] == "" {
			continue
		}
		entries = append(entries, Entry{
			Project:     r["Project"],
			Status:      r["Status"],
			ID:          r["ID"],
			Title:       r["Title"],
			Description: r["Description"],
			Priority:    r["Priority"],
			Owner:       r["Owner"],
			Notes:       r["Notes"],
		})
	}
	return entries
}

// Find returns the entry with id.
func Find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.ID, id) {
			return e, true
		}
	}
	return Entry{}, false
}
