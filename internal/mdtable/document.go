package mdtable

import (
	"strings"
)

// Document is a markdown file held as lines so individual section tables can
// be rewritten without disturbing surrounding prose.
type Document struct {
	lines []string
}

// NewDocument splits text into a Document. CRLF line endings are normalised.
func NewDocument(text string) *Document {
	return &Document{lines: splitLines(text)}
}

// String joins the document back together. It does not normalise spacing;
// use Normalize before writing to disk.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// SectionBounds reports the body of "## <heading>" as a half-open line range.
func (d *Document) SectionBounds(heading string) (start, end int, ok bool) {
	return sectionBounds(d.lines, heading)
}

// HasSection reports whether the heading is present.
func (d *Document) HasSection(heading string) bool {
	_, _, ok := d.SectionBounds(heading)
	return ok
}

// Section returns the body lines of a section, or nil when absent.
func (d *Document) Section(heading string) []string {
	start, end, ok := d.SectionBounds(heading)
	if !ok {
		return nil
	}
	out := make([]string, end-start)
	copy(out, d.lines[start:end])
	return out
}

// SectionTable parses the first table inside a section.
func (d *Document) SectionTable(heading string) ([]string, []Row) {
	return Parse(d.Section(heading))
}

// SectionTables parses every table inside a section. Table bounds index the
// whole document, so they go stale once the document is edited.
func (d *Document) SectionTables(heading string) []Table {
	start, end, ok := d.SectionBounds(heading)
	if !ok {
		return nil
	}
	tables := Tables(d.lines[start:end])
	for i := range tables {
		tables[i].Start += start
		tables[i].End += start
	}
	return tables
}

// ReplaceTable renders rows in place of t, leaving every other line alone.
func (d *Document) ReplaceTable(t Table, headers []string, rows []Row) error {
	rendered, err := Render(rows, headers)
	if err != nil {
		return err
	}
	d.splice(t.Start, t.End, strings.Split(rendered, "\n"))
	return nil
}

// ReplaceSectionTable renders rows in place of the section's first table.
// A section without a table gets one directly under the heading; a missing
// section is appended to the end of the document.
func (d *Document) ReplaceSectionTable(heading string, headers []string, rows []Row) error {
	if tables := d.SectionTables(heading); len(tables) > 0 {
		return d.ReplaceTable(tables[0], headers, rows)
	}

	rendered, err := Render(rows, headers)
	if err != nil {
		return err
	}
	table := strings.Split(rendered, "\n")

	start, end, ok := d.SectionBounds(heading)
	if !ok {
		d.AppendSection(heading, table)
		return nil
	}

	newBody := make([]string, 0, len(table)+2+end-start)
	newBody = append(newBody, "")
	newBody = append(newBody, table...)
	newBody = append(newBody, "")
	newBody = append(newBody, d.lines[start:end]...)
	d.splice(start, end, newBody)
	return nil
}

// AppendSection adds "## <heading>" followed by body at the end of the
// document, separated from existing content by a blank line.
func (d *Document) AppendSection(heading string, body []string) {
	for len(d.lines) > 0 && strings.TrimSpace(d.lines[len(d.lines)-1]) == "" {
		d.lines = d.lines[:len(d.lines)-1]
	}
	if len(d.lines) > 0 {
		d.lines = append(d.lines, "")
	}
	d.lines = append(d.lines, "## "+strings.TrimSpace(heading), "")
	d.lines = append(d.lines, body...)
	d.lines = append(d.lines, "")
}

// InsertLines places lines before index i. Indexes past the end append.
func (d *Document) InsertLines(i int, lines ...string) {
	if i < 0 {
		i = 0
	}
	if i > len(d.lines) {
		i = len(d.lines)
	}
	d.splice(i, i, lines)
}

// IndexOf returns the first line index at or after from whose trimmed text
// equals target, or -1.
func (d *Document) IndexOf(target string, from int) int {
	for i := max(from, 0); i < len(d.lines); i++ {
		if strings.TrimSpace(d.lines[i]) == target {
			return i
		}
	}
	return -1
}

func (d *Document) splice(start, end int, replacement []string) {
	out := make([]string, 0, len(d.lines)-(end-start)+len(replacement))
	out = append(out, d.lines[:start]...)
	out = append(out, replacement...)
	out = append(out, d.lines[end:]...)
	d.lines = out
}
