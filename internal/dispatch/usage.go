package dispatch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gorewood/taskboard/internal/atomicfile"
)

// UsageDayLayout keys the usage file.
const UsageDayLayout = "2006-01-02"

// UsageCounter tracks runs per calendar day in a JSON object file
// mapping "2006-01-02" to a count.
type UsageCounter struct {
	path string
}

// NewUsageCounter returns a counter stored at path.
func NewUsageCounter(path string) *UsageCounter {
	return &UsageCounter{path: path}
}

// Count returns the runs recorded for day's date.
func (u *UsageCounter) Count(day time.Time) int {
	return u.load()[day.Format(UsageDayLayout)]
}

// Remaining returns limit minus today's count, floored at zero.
func (u *UsageCounter) Remaining(day time.Time, limit int) int {
	return max(0, limit-u.Count(day))
}

// Increment records one run on day and leaves other dates untouched.
func (u *UsageCounter) Increment(day time.Time) error {
	usage := u.load()
	usage[day.Format(UsageDayLayout)]++
	data, err := json.MarshalIndent(usage, "", "  ")
	if err != nil {
		return fmt.Errorf("encode usage: %w", err)
	}
	return atomicfile.Write(u.path, append(data, '\n'))
}

// load reads the usage map. A missing or unreadable file counts as empty.
func (u *UsageCounter) load() map[string]int {
	usage := make(map[string]int)
	data, err := os.ReadFile(u.path)
	if err != nil {
		return usage
	}
	if err := json.Unmarshal(data, &usage); err != nil {
		return make(map[string]int)
	}
	return usage
}
