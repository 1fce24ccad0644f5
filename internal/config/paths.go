package config

import (
	"path/filepath"
	"strings"
)

// AgentsPath returns the agents directory joined with elem.
func (c *Config) AgentsPath(elem ...string) string {
	return filepath.Join(append([]string{c.Root, c.AgentsDir}, elem...)...)
}

// ProjectsDir is where project folders live.
func (c *Config) ProjectsDir() string { return c.AgentsPath("projects") }

// LedgerPath is the generated open-task ledger.
func (c *Config) LedgerPath() string { return c.AgentsPath("OPENTASKS.md") }

// HandoffsPath is the handoff log.
func (c *Config) HandoffsPath() string { return c.AgentsPath("HANDOFFS.md") }

// TemplatesDir holds board-level template overrides.
func (c *Config) TemplatesDir() string { return c.AgentsPath("templates") }

// ProfilesDir holds agent profile JSON files.
func (c *Config) ProfilesDir() string { return c.AgentsPath("profiles") }

// TriageLibraryPath is the Gemini triage template library.
func (c *Config) TriageLibraryPath() string { return c.AgentsPath("prompts", "gemini_triage.json") }

// UsagePath is the quota counter file for tool.
func (c *Config) UsagePath(tool string) string {
	return c.AgentsPath("logs", tool+"-usage.json")
}

// LabConfigPath is the lab registration file.
func (c *Config) LabConfigPath() string { return c.RootPath(c.LabConfig) }

// RootPath resolves p against the board root unless it is absolute.
func (c *Config) RootPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}

// Project returns the overrides for name (zero value when none).
func (c *Config) Project(name string) ProjectConfig {
	if pc, ok := c.Projects[name]; ok {
		return pc
	}
	// viper lowercases map keys
	return c.Projects[strings.ToLower(name)]
}

// ProjectSchema returns the schema name for a project.
func (c *Config) ProjectSchema(name string) string {
	if s := c.Project(name).Schema; s != "" {
		return s
	}
	if c.Schema != "" {
		return c.Schema
	}
	return DefaultSchema
}

// Tool returns the configuration for an agent CLI.
func (c *Config) Tool(name string) (ToolConfig, bool) {
	tool, ok := c.Tools[strings.ToLower(name)]
	return tool, ok
}
