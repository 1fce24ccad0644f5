package board

import (
	"fmt"
	"strings"

	"github.com/gorewood/taskboard/internal/mdtable"
)

// Field is the semantic meaning of a table column.
type Field string

// Known fields.
const (
	FieldID           Field = "id"
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldPriority     Field = "priority"
	FieldStatus       Field = "status"
	FieldOwner        Field = "owner"
	FieldEffort       Field = "effort"
	FieldDependencies Field = "dependencies"
	FieldNotes        Field = "notes"
	FieldStarted      Field = "started"
)

// Schema names.
const (
	SchemaStandard = "standard"
	SchemaLegacy   = "legacy"
)

// Column binds a header to a field. Aliases are alternative header spellings.
type Column struct {
	Field   Field
	Header  string
	Aliases []string
}

// Schema describes how a project's tables map onto Task fields.
type Schema struct {
	Name string

	// Columns is the header order used when a section has no table yet.
	Columns []Column

	// Positional decodes Sections by column index instead of header text.
	Positional bool

	// Sections are the headings ListTasks reads.
	Sections []string

	// SectionHeaders overrides Columns for new tables in specific sections.
	SectionHeaders map[string][]string
}

// supplementalColumns are recognised in any header-driven table but are not
// part of the default layout.
var supplementalColumns = []Column{
	{Field: FieldStatus, Header: "Status", Aliases: []string{"State"}},
	{Field: FieldStarted, Header: "Started", Aliases: []string{"Date", "Started On", "Start Date"}},
}

// standardColumns is the canonical layout. Every header-driven table
// recognises these headers whatever its schema's default columns are.
var standardColumns = []Column{
	{Field: FieldID, Header: "ID", Aliases: []string{"Task ID", "Identifier"}},
	{Field: FieldTitle, Header: "Title", Aliases: []string{"Task", "Name"}},
	{Field: FieldDescription, Header: "Description", Aliases: []string{"Details", "Summary"}},
	{Field: FieldPriority, Header: "Priority"},
	{Field: FieldOwner, Header: "Owner", Aliases: []string{"Assignee", "Agent"}},
	{Field: FieldEffort, Header: "Effort", Aliases: []string{"Estimate", "Est."}},
	{Field: FieldDependencies, Header: "Dependencies", Aliases: []string{"Depends On", "Deps", "Blocked By"}},
	{Field: FieldNotes, Header: "Notes", Aliases: []string{"Note", "Comments"}},
}

// StandardSchema is the canonical header-driven layout over sections.
func StandardSchema(sections []string) Schema {
	return Schema{
		Name:     SchemaStandard,
		Columns:  append([]Column(nil), standardColumns...),
		Sections: append([]string(nil), sections...),
	}
}

// LegacySchema reads only the Backlog table, by position, as
// ID, Title, Description, Priority, Owner, Effort, Dependencies. Tables it
// creates outside Backlog use the short in-progress layout.
func LegacySchema() Schema {
	s := StandardSchema([]string{"Backlog"})
	s.Name = SchemaLegacy
	s.Columns = s.Columns[:7]
	s.Positional = true
	s.SectionHeaders = map[string][]string{
		"*": {"ID", "Title", "Started", "Owner", "Notes"},
	}
	return s
}

// SchemaFor resolves a schema by name.
func SchemaFor(name string, sections []string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemaStandard:
		return StandardSchema(sections), nil
	case SchemaLegacy:
		return LegacySchema(), nil
	}
	return Schema{}, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
}

// Headers returns the header row for a new table in section.
func (s Schema) Headers(section string) []string {
	if h, ok := s.lookupSectionHeaders(section); ok {
		return append([]string(nil), h...)
	}
	headers := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		headers[i] = c.Header
	}
	return headers
}

func (s Schema) lookupSectionHeaders(section string) ([]string, bool) {
	if s.SectionHeaders == nil {
		return nil, false
	}
	for name, h := range s.SectionHeaders {
		if strings.EqualFold(name, section) {
			return h, true
		}
	}
	if s.positionalIn(section) {
		return nil, false
	}
	h, ok := s.SectionHeaders["*"]
	return h, ok
}

// positionalIn reports whether section is decoded by column index.
func (s Schema) positionalIn(section string) bool {
	return s.Positional && s.readsSection(section)
}

func (s Schema) readsSection(section string) bool {
	for _, name := range s.Sections {
		if strings.EqualFold(name, section) {
			return true
		}
	}
	return false
}

// FieldForHeader maps header text to a field, case-insensitively.
func (s Schema) FieldForHeader(header string) (Field, bool) {
	h := strings.TrimSpace(header)
	for _, cols := range [][]Column{s.Columns, standardColumns, supplementalColumns} {
		for _, c := range cols {
			if strings.EqualFold(h, c.Header) || strings.EqualFold(h, string(c.Field)) {
				return c.Field, true
			}
			for _, a := range c.Aliases {
				if strings.EqualFold(h, a) {
					return c.Field, true
				}
			}
		}
	}
	return "", false
}

// columnFields returns the field bound to each header of a table.
func (s Schema) columnFields(section string, headers []string) []Field {
	fields := make([]Field, len(headers))
	positional := s.positionalIn(section)
	for i, h := range headers {
		if positional {
			if i < len(s.Columns) {
				fields[i] = s.Columns[i].Field
			}
			continue
		}
		if f, ok := s.FieldForHeader(h); ok {
			fields[i] = f
		}
	}
	return fields
}

// Decode turns one table row of section into a Task.
func (s Schema) Decode(section string, headers []string, row mdtable.Row) Task {
	t := Task{Status: section}
	for i, f := range s.columnFields(section, headers) {
		value := row[headers[i]]
		if f == "" {
			if value != "" {
				if t.Extra == nil {
					t.Extra = make(map[string]string)
				}
				t.Extra[headers[i]] = value
			}
			continue
		}
		t.set(f, value)
	}
	return t
}

// Encode renders t as a row for a table of section with headers.
func (s Schema) Encode(section string, headers []string, t Task) mdtable.Row {
	row := make(mdtable.Row, len(headers))
	for i, f := range s.columnFields(section, headers) {
		if f == "" {
			row[headers[i]] = t.Extra[headers[i]]
			continue
		}
		row[headers[i]] = t.value(f)
	}
	return row
}

// rowID extracts the identifier cell of a row.
func (s Schema) rowID(section string, headers []string, row mdtable.Row) string {
	for i, f := range s.columnFields(section, headers) {
		if f == FieldID {
			return row[headers[i]]
		}
	}
	return ""
}

// header returns the header bound to field in a table, if any.
func (s Schema) header(section string, headers []string, field Field) (string, bool) {
	for i, f := range s.columnFields(section, headers) {
		if f == field {
			return headers[i], true
		}
	}
	return "", false
}
