package artifact

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.md
var builtinFS embed.FS

// Template names.
const (
	TemplateSessionLog     = "session-log"
	TemplatePrompt         = "implementation-prompt"
	TemplateWorkingSession = "working-session"
)

// Template is a markdown template with frontmatter metadata.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     int    `yaml:"version,omitempty"`

	Content string `yaml:"-"`
	Source  string `yaml:"-"`
}

// Loader resolves templates from the board, the user config dir, then the
// binary.
type Loader struct {
	boardDir  string
	globalDir string
}

// NewLoader returns a Loader. Either directory may be empty.
func NewLoader(boardDir, globalDir string) *Loader {
	return &Loader{boardDir: boardDir, globalDir: globalDir}
}

// Load finds a template by name.
func (l *Loader) Load(name string) (*Template, error) {
	if tmpl, err := loadFromPath(l.boardDir, name); err == nil {
		tmpl.Source = "board"
		return tmpl, nil
	}
	if tmpl, err := loadFromPath(l.globalDir, name); err == nil {
		tmpl.Source = "global"
		return tmpl, nil
	}
	data, err := builtinFS.ReadFile("templates/" + name + ".md")
	if err != nil {
		return nil, fmt.Errorf("template %q not found", name)
	}
	tmpl, err := parseTemplate(string(data))
	if err != nil {
		return nil, err
	}
	tmpl.Source = "built-in"
	return tmpl, nil
}

// Builtins lists the names of embedded templates.
func Builtins() []string {
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, strings.TrimSuffix(e.Name(), ".md"))
		}
	}
	sort.Strings(names)
	return names
}

func loadFromPath(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, errors.New("no directory")
	}
	path := filepath.Join(dir, name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return parseTemplate(string(data))
}

func parseTemplate(raw string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}
	tmpl.Content = strings.TrimSpace(content)
	return &tmpl, nil
}

// splitFrontmatter separates YAML frontmatter delimited by --- lines.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}
	before, after, ok := strings.Cut(raw[3:], "\n---")
	if !ok {
		return "", raw
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// Render substitutes {{key}} placeholders in one pass, so values are never
// expanded again. Unknown placeholders are left.
func Render(tmpl *Template, vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl.Content)
}
