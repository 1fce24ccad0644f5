package board

import (
	"slices"
	"testing"
)

func TestAvailable(t *testing.T) {
	tasks := []Task{
		{ID: "A", Status: StatusCompleted},
		{ID: "B", Status: StatusBacklog, Dependencies: []string{"A"}},
		{ID: "C", Status: StatusBacklog, Dependencies: []string{"Z"}},
	}
	if got := ids(Available(tasks)); !slices.Equal(got, []string{"B"}) {
		t.Errorf("Available() = %v, want [B]", got)
	}
}

func TestAvailable_StatusFilter(t *testing.T) {
	tasks := []Task{
		{ID: "R", Status: StatusReady},
		{ID: "P", Status: StatusInProgress},
		{ID: "D", Status: "Blocked"},
		{ID: "X", Status: StatusBacklog, Dependencies: []string{"P"}},
	}
	if got := ids(Available(tasks)); !slices.Equal(got, []string{"R"}) {
		t.Errorf("Available() = %v, want [R]", got)
	}
}

func TestPrioritize_Stable(t *testing.T) {
	tasks := []Task{
		{ID: "1", Priority: PriorityLow},
		{ID: "2", Priority: "Someday"},
		{ID: "3", Priority: PriorityHigh},
		{ID: "4", Priority: PriorityLow},
		{ID: "5", Priority: PriorityHigh},
		{ID: "6", Priority: PriorityCritical},
	}
	want := []string{"6", "3", "5", "1", "4", "2"}
	if got := ids(Prioritize(tasks)); !slices.Equal(got, want) {
		t.Errorf("Prioritize() = %v, want %v", got, want)
	}
	if tasks[0].ID != "1" {
		t.Error("Prioritize() mutated its input")
	}
}

func TestAutoPick(t *testing.T) {
	tasks := []Task{
		{ID: "X", Status: StatusBacklog, Priority: PriorityLow},
		{ID: "Y", Status: StatusBacklog, Priority: PriorityCritical},
	}
	got, ok := AutoPick(tasks)
	if !ok || got.ID != "Y" {
		t.Errorf("AutoPick() = %v, %v, want Y", got.ID, ok)
	}

	if _, ok := AutoPick([]Task{{ID: "Z", Status: StatusCompleted}}); ok {
		t.Error("AutoPick() picked from no available tasks")
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
		rank int
	}{
		{"critical", PriorityCritical, 0},
		{" HIGH ", PriorityHigh, 1},
		{"Medium", PriorityMedium, 2},
		{"low", PriorityLow, 3},
		{"P0", Priority("P0"), 99},
	}
	for _, tt := range tests {
		got := ParsePriority(tt.in)
		if got != tt.want || got.Rank() != tt.rank {
			t.Errorf("ParsePriority(%q) = %q (rank %d), want %q (rank %d)", tt.in, got, got.Rank(), tt.want, tt.rank)
		}
	}
}

func TestParseDependencies(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"-", nil},
		{"None", nil},
		{"N/A", nil},
		{"WBR-001", []string{"WBR-001"}},
		{"WBR-001, WBR-002 ,", []string{"WBR-001", "WBR-002"}},
	}
	for _, tt := range tests {
		if got := ParseDependencies(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseDependencies(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
