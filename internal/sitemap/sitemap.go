// Package sitemap writes SITEMAP.md and SITEMAP_DETAILED.md, two markdown
// views of a repository's directory layout for agents to orient by.
package sitemap

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/gorewood/taskboard/internal/atomicfile"
)

// Output file names.
const (
	OverviewFile = "SITEMAP.md"
	DetailedFile = "SITEMAP_DETAILED.md"
)

// PreviewLimit caps the subdirectories listed per top-level directory.
const PreviewLimit = 8

const footer = "> Generated via `taskboard sitemap`."

// Excluded names are never listed. Dot-directories are skipped too, except
// the ones in visibleDotDirs.
var Excluded = []string{
	".DS_Store", ".git", ".idea", ".next", ".turbo", ".venv", "__pycache__",
	"dist", "build", "out", "coverage", "node_modules", "tmp",
}

var visibleDotDirs = []string{".github"}

// Sitemap is the pair of generated documents.
type Sitemap struct {
	Overview string
	Detailed string
}

// Build scans root and renders both documents.
func Build(root string, now time.Time) (Sitemap, error) {
	top, err := subdirs(root)
	if err != nil {
		return Sitemap{}, err
	}
	date := now.Format("2006-01-02")

	overview := []string{
		"# SITEMAP: Source Overview",
		"",
		"_Last generated: " + date + "_",
		"",
		"## Top-Level Directories",
		"",
	}
	detailed := []string{
		"# SITEMAP_DETAILED: Directory Tree",
		"",
		"_Last generated: " + date + "_",
		"",
		"```",
	}

	for _, name := range top {
		dir := filepath.Join(root, name)
		overview = append(overview, "- `"+name+"/`")
		children, err := subdirs(dir)
		if err != nil {
			return Sitemap{}, err
		}
		if len(children) > 0 {
			overview = append(overview, "  - "+preview(children))
		}
		if detailed, err = tree(dir, name, 0, detailed); err != nil {
			return Sitemap{}, err
		}
	}

	overview = append(overview, "", footer)
	detailed = append(detailed, "```", footer)
	return Sitemap{
		Overview: strings.Join(overview, "\n"),
		Detailed: strings.Join(detailed, "\n"),
	}, nil
}

// Write stores both documents in dir and returns their paths.
func Write(dir string, s Sitemap) ([]string, error) {
	paths := []string{filepath.Join(dir, OverviewFile), filepath.Join(dir, DetailedFile)}
	for i, content := range []string{s.Overview, s.Detailed} {
		if err := atomicfile.WriteMarkdown(paths[i], content); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func preview(children []string) string {
	shown := children
	if len(shown) > PreviewLimit {
		shown = shown[:PreviewLimit]
	}
	parts := make([]string, len(shown))
	for i, c := range shown {
		parts[i] = c + "/"
	}
	out := strings.Join(parts, ", ")
	if len(children) > PreviewLimit {
		out += ", …"
	}
	return out
}

func tree(dir, name string, depth int, lines []string) ([]string, error) {
	lines = append(lines, strings.Repeat("  ", depth)+name+"/")
	children, err := subdirs(dir)
	if err != nil {
		return lines, err
	}
	for _, child := range children {
		if lines, err = tree(filepath.Join(dir, child), child, depth+1, lines); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

// subdirs lists the listable directories in dir, case-insensitively sorted.
func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !skip(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

func skip(name string) bool {
	if slices.Contains(Excluded, name) {
		return true
	}
	return strings.HasPrefix(name, ".") && !slices.Contains(visibleDotDirs, name)
}
