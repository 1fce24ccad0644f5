package board

import (
	"errors"
	"slices"
	"testing"

	"github.com/gorewood/taskboard/internal/mdtable"
)

func TestSchema_FieldForHeader(t *testing.T) {
	s := StandardSchema(nil)
	tests := []struct {
		header string
		want   Field
		ok     bool
	}{
		{"ID", FieldID, true},
		{"estimate", FieldEffort, true},
		{"Depends On", FieldDependencies, true},
		{" Assignee ", FieldOwner, true},
		{"Started", FieldStarted, true},
		{"status", FieldStatus, true},
		{"Colour", "", false},
	}
	for _, tt := range tests {
		got, ok := s.FieldForHeader(tt.header)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FieldForHeader(%q) = %q, %v, want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSchemaFor(t *testing.T) {
	if _, err := SchemaFor("bogus", nil); !errors.Is(err, ErrUnknownSchema) {
		t.Errorf("SchemaFor(bogus) error = %v, want ErrUnknownSchema", err)
	}
	s, err := SchemaFor("", []string{"Backlog"})
	if err != nil || s.Name != SchemaStandard {
		t.Errorf("SchemaFor(\"\") = %v, %v", s.Name, err)
	}
}

func TestSchema_Headers(t *testing.T) {
	standard := StandardSchema(nil)
	if got := len(standard.Headers("Review")); got != 8 {
		t.Errorf("standard headers = %d, want 8", got)
	}

	legacy := LegacySchema()
	if got := legacy.Headers("Backlog"); len(got) != 7 || got[6] != "Dependencies" {
		t.Errorf("legacy backlog headers = %v", got)
	}
	want := []string{"ID", "Title", "Started", "Owner", "Notes"}
	if got := legacy.Headers("In Progress"); !slices.Equal(got, want) {
		t.Errorf("legacy in progress headers = %v, want %v", got, want)
	}
}

func TestSchema_DecodeEncode(t *testing.T) {
	s := StandardSchema(nil)
	headers := []string{"ID", "Task", "Estimate", "Sprint"}
	row := mdtable.Row{"ID": "A-1", "Task": "Title", "Estimate": "2d", "Sprint": "7"}

	task := s.Decode("Backlog", headers, row)
	if task.ID != "A-1" || task.Title != "Title" || task.Effort != "2d" || task.Extra["Sprint"] != "7" {
		t.Fatalf("Decode() = %+v", task)
	}

	back := s.Encode("Backlog", headers, task)
	for _, h := range headers {
		if back[h] != row[h] {
			t.Errorf("Encode()[%q] = %q, want %q", h, back[h], row[h])
		}
	}
}
