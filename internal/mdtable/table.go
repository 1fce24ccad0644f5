package mdtable

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// Row maps a header name to its trimmed cell value.
type Row map[string]string

// ErrNoHeaders is returned by Render when neither headers nor row keys exist.
var ErrNoHeaders = errors.New("markdown table requires at least one header")

var separatorCell = regexp.MustCompile(`^[:-]+$`)

// Table is one contiguous block of pipe lines. Start and End are a
// half-open line range into the slice it was found in.
type Table struct {
	Start   int
	End     int
	Headers []string
	Rows    []Row
}

// Parse decodes the first markdown table found in lines. No pipe line at all
// yields nil headers and rows.
func Parse(lines []string) ([]string, []Row) {
	tables := Tables(lines)
	if len(tables) == 0 {
		return nil, nil
	}
	return tables[0].Headers, tables[0].Rows
}

// Tables decodes every table in lines.
//
// A table is a run of consecutive lines starting with "|" (after trimming)
// and ends at the first line that does not. Its first line supplies the
// headers and a divider directly below it is skipped; every other line
// becomes a Row. Missing trailing cells are empty; rows whose cells are all
// empty are dropped.
func Tables(lines []string) []Table {
	var tables []Table
	for i := 0; i < len(lines); i++ {
		if !isTableLine(lines[i]) {
			continue
		}
		end := i
		for end < len(lines) && isTableLine(lines[end]) {
			end++
		}
		tables = append(tables, parseBlock(lines[i:end], i))
		i = end
	}
	return tables
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

func parseBlock(block []string, offset int) Table {
	t := Table{Start: offset, End: offset + len(block)}
	t.Headers = splitCells(strings.TrimSpace(block[0]))

	body := block[1:]
	if len(body) > 0 && IsSeparator(splitCells(strings.TrimSpace(body[0]))) {
		body = body[1:]
	}
	for _, line := range body {
		cells := splitCells(strings.TrimSpace(line))
		row := make(Row, len(t.Headers))
		filled := false
		for i, header := range t.Headers {
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			row[header] = value
			if value != "" {
				filled = true
			}
		}
		if filled {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// IsSeparator reports whether cells form a "| --- | :---: |" divider row.
func IsSeparator(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !separatorCell.MatchString(strings.ReplaceAll(cell, " ", "")) {
			return false
		}
	}
	return true
}

// splitCells strips the outer pipes of a table line and splits the rest.
func splitCells(line string) []string {
	inner := strings.TrimPrefix(line, "|")
	inner = strings.TrimSuffix(inner, "|")
	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// Render encodes rows as a markdown table with the given column order.
//
// When headers is empty the sorted union of all row keys is used; callers
// that care about column order must pass headers explicitly.
func Render(rows []Row, headers []string) (string, error) {
	if len(headers) == 0 {
		headers = unionKeys(rows)
	}
	if len(headers) == 0 {
		return "", ErrNoHeaders
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, renderLine(headers))

	divider := make([]string, len(headers))
	for i := range divider {
		divider[i] = "---"
	}
	lines = append(lines, renderLine(divider))

	for _, row := range rows {
		values := make([]string, len(headers))
		for i, header := range headers {
			values[i] = strings.TrimSpace(row[header])
		}
		lines = append(lines, renderLine(values))
	}

	return strings.Join(lines, "\n"), nil
}

func renderLine(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func unionKeys(rows []Row) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
