package handoff

import (
	"fmt"
	"strings"
)

// DefaultNextStep is used when an entry has no next steps.
const DefaultNextStep = "Review backlog and claim the next GH-00x task."

// Entry is one handoff record.
type Entry struct {
	Key      string   `json:"key"`
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	Codename string   `json:"codename"`
	Summary  []string `json:"summary"`
	Next     []string `json:"next"`
	Notes    []string `json:"notes,omitempty"`
	PRNumber int      `json:"pr_number,omitempty"`
	Branch   string   `json:"branch,omitempty"`
}

// Marker is the comment line identifying an entry by key.
func Marker(key string) string {
	return "<!-- handoff-id: " + key + " -->"
}

// Render formats the entry, ending with a --- rule and a newline.
func (e Entry) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Entry: %s — \"%s\" (Agent codename: `%s`)\n", e.Date, e.Title, e.Codename)
	if e.Key != "" {
		b.WriteString(Marker(e.Key) + "\n")
	}

	b.WriteString("\n**Summary**\n\n")
	for _, line := range e.Summary {
		b.WriteString("* " + line + "\n")
	}

	next := e.Next
	if len(next) == 0 {
		next = []string{DefaultNextStep}
	}
	b.WriteString("\n**Next Agent To-Do**\n\n")
	for i, line := range next {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}

	if notes := e.allNotes(); len(notes) > 0 {
		b.WriteString("\n**Notes**\n\n")
		for _, line := range notes {
			b.WriteString("* " + line + "\n")
		}
	}

	b.WriteString("\n---\n")
	return b.String()
}

func (e Entry) allNotes() []string {
	notes := append([]string(nil), e.Notes...)
	if e.PRNumber > 0 {
		notes = append(notes, fmt.Sprintf("Source PR: #%d", e.PRNumber))
	}
	if e.Branch != "" {
		notes = append(notes, "Merged into `"+e.Branch+"`")
	}
	return notes
}

// StripBullets turns a PR body into summary lines, dropping blank lines
// and leading bullet characters.
func StripBullets(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "-*• "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
