package mdtable

import (
	"regexp"
	"strings"
)

// ExtractSection returns the lines following the "## <heading>" line up to,
// but not including, the next line starting with "## ". The heading match is
// case-insensitive. A missing heading yields nil.
func ExtractSection(document, heading string) []string {
	lines := splitLines(document)
	start, end, ok := sectionBounds(lines, heading)
	if !ok {
		return nil
	}
	return lines[start:end]
}

// headingPattern matches a level-two heading line exactly, ignoring case.
func headingPattern(heading string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^##\s+` + regexp.QuoteMeta(strings.TrimSpace(heading)) + `\s*$`)
}

// sectionBounds locates the body of a section: start is the index after the
// heading, end is the index of the next "## " line (or len(lines)).
func sectionBounds(lines []string, heading string) (start, end int, ok bool) {
	pattern := headingPattern(heading)
	start = -1
	for i, line := range lines {
		if pattern.MatchString(strings.TrimSpace(line)) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return 0, 0, false
	}
	end = len(lines)
	for i := start; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "## ") {
			end = i
			break
		}
	}
	return start, end, true
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
