package artifact

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gorewood/taskboard/internal/config"
)

var taskIDPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)-(\d+)`)

// SuggestFiles returns the files of every hint whose prefix matches the
// task ID prefix and whose [From, To] range contains its number.
func SuggestFiles(hints []config.FileHint, id string) []string {
	m := taskIDPattern.FindStringSubmatch(strings.TrimSpace(id))
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}

	var files []string
	seen := make(map[string]bool)
	for _, h := range hints {
		if !strings.EqualFold(h.Prefix, m[1]) {
			continue
		}
		if n < h.From || (h.To > 0 && n > h.To) {
			continue
		}
		for _, f := range h.Files {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}
