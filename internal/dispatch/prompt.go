package dispatch

import (
	"strings"

	"github.com/gorewood/taskboard/internal/ledger"
)

// ComposePrompt builds the base agent prompt for task. ledgerText is the
// current ledger document.
func ComposePrompt(task ledger.Entry, ledgerText string) string {
	var b strings.Builder
	b.WriteString("Execute this task: " + task.ID + ": " + task.Title + "\n\n")
	b.WriteString("Description: " + orDefault(task.Description, "n/a") + "\n")
	b.WriteString("Priority: " + orDefault(task.Priority, "n/a") + "\n")
	b.WriteString("Owner: " + orDefault(task.Owner, "Unassigned") + "\n")
	b.WriteString("Notes: " + orDefault(task.Notes, "None") + "\n\n")
	b.WriteString("Available OPENTASKS:\n")
	b.WriteString(strings.TrimRight(ledgerText, "\n") + "\n\n")
	b.WriteString("Execute the task by:\n")
	b.WriteString("1. Understanding what needs to be done\n")
	b.WriteString("2. Suggesting changes to files under agents/**\n")
	b.WriteString("3. Providing a concise summary of next steps\n\n")
	b.WriteString("Available commands to reference:\n")
	b.WriteString("- taskboard ledger\n")
	b.WriteString("- taskboard sitemap\n")
	b.WriteString("- taskboard tasks --project <name> --list\n")
	return b.String()
}

// JulesDescription is the task description sent to `jules new`.
func JulesDescription(task ledger.Entry, prompt string) string {
	desc := task.ID + " - " + task.Title + "\n\n" +
		"Priority: " + orDefault(task.Priority, "n/a") + "\n" +
		"Notes: " + orDefault(task.Notes, "None") + "\n\n" +
		"Detailed instructions:\n" + prompt
	return strings.TrimSpace(desc)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
