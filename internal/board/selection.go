package board

import (
	"slices"
	"strings"
)

// Status names with special meaning to selection.
const (
	StatusBacklog    = "Backlog"
	StatusReady      = "Ready"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// GetTask finds a task by identifier.
func GetTask(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Available returns tasks in Backlog or Ready whose every dependency is the
// identifier of a Completed task. Unknown identifiers never satisfy a
// dependency. Input order is preserved.
func Available(tasks []Task) []Task {
	completed := make(map[string]bool)
	for _, t := range tasks {
		if strings.EqualFold(t.Status, StatusCompleted) {
			completed[t.ID] = true
		}
	}

	var out []Task
	for _, t := range tasks {
		if !strings.EqualFold(t.Status, StatusBacklog) && !strings.EqualFold(t.Status, StatusReady) {
			continue
		}
		ready := true
		for _, dep := range t.Dependencies {
			if !completed[dep] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, t)
		}
	}
	return out
}

// Prioritize returns a copy of tasks stably sorted by priority rank.
func Prioritize(tasks []Task) []Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b Task) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return out
}

// AutoPick returns the highest-priority available task.
func AutoPick(tasks []Task) (Task, bool) {
	ranked := Prioritize(Available(tasks))
	if len(ranked) == 0 {
		return Task{}, false
	}
	return ranked[0], true
}
