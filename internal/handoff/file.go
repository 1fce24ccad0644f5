package handoff

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gorewood/taskboard/internal/atomicfile"
)

// AutomationHeading titles the automation run log.
const AutomationHeading = "## Automation Runs"

const (
	rule       = "\n---\n"
	skeleton   = "# Agent Handoffs\n\nNewest entries first.\n\n---\n"
	bulletMark = "- "
)

// File is a HANDOFFS.md document on disk.
type File struct {
	path   string
	logger *log.Logger
}

// Open returns a File for path. The file is created on first write.
func Open(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &File{path: path, logger: logger}
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

func (f *File) read() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return skeleton, nil
	}
	if err != nil {
		return "", fmt.Errorf("read handoffs: %w", err)
	}
	return string(data), nil
}

// Append inserts entry after the first --- rule unless it is already
// logged. It returns false when skipped as a duplicate; force skips the
// check. An entry without a key is given a random one.
func (f *File) Append(entry Entry, force bool) (Entry, bool, error) {
	content, err := f.read()
	if err != nil {
		return entry, false, err
	}
	if !force && Logged(content, entry) {
		f.logger.Info("handoff entry already exists", "title", entry.Title, "key", entry.Key)
		return entry, false, nil
	}
	if entry.Key == "" {
		entry.Key = uuid.New().String()
	}

	if err := atomicfile.WriteMarkdown(f.path, Insert(content, entry.Render())); err != nil {
		return entry, false, err
	}
	f.logger.Info("appended handoff entry", "title", entry.Title, "key", entry.Key)
	return entry, true, nil
}

// AppendAutomation adds a bullet at the top of the Automation Runs section.
func (f *File) AppendAutomation(line string) error {
	content, err := f.read()
	if err != nil {
		return err
	}
	return atomicfile.WriteMarkdown(f.path, AppendAutomationLine(content, line))
}

// Logged reports whether content already holds entry: by key marker when
// the entry has a key, else by its quoted title.
func Logged(content string, entry Entry) bool {
	if entry.Key != "" {
		return strings.Contains(content, Marker(entry.Key))
	}
	return strings.Contains(content, `"`+entry.Title+`"`)
}

// Insert places entry directly after the first --- rule, or at the end
// when the document has none.
func Insert(content, entry string) string {
	head, tail, found := strings.Cut(content, rule)
	if !found {
		return strings.TrimRight(content, "\n") + "\n\n" + entry
	}
	return head + rule + "\n" + entry + tail
}

// AppendAutomationLine puts "- line" first under the Automation Runs
// heading. Without that heading, a new section is placed before the first
// --- rule, or at the end.
func AppendAutomationLine(content, line string) string {
	bullet := bulletMark + line
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	for i, l := range lines {
		if strings.TrimSpace(l) != AutomationHeading {
			continue
		}
		at := i + 1
		for at < len(lines) && strings.TrimSpace(lines[at]) == "" {
			at++
		}
		out := append([]string(nil), lines[:at]...)
		if at == i+1 {
			out = append(out, "")
		}
		out = append(out, bullet)
		out = append(out, lines[at:]...)
		return strings.Join(out, "\n")
	}

	section := AutomationHeading + "\n\n" + bullet + "\n"
	if head, tail, found := strings.Cut(content, rule); found {
		return head + "\n\n" + section + rule + tail
	}
	return strings.TrimRight(content, "\n") + "\n\n" + section
}
