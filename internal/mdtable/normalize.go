package mdtable

import (
	"regexp"
	"strings"
)

// maxBlankRun is the longest run of blank lines Normalize keeps.
const maxBlankRun = 2

// Normalize trims trailing whitespace from every line, collapses runs of more
// than two blank lines, and ends the text with exactly one newline.
func Normalize(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > maxBlankRun {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimRight(strings.Join(out, "\n"), " \t\n") + "\n"
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text and replaces runs of other characters with "-".
func Slugify(text string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(text), "-"), "-")
}
