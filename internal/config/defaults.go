package config

// Built-in defaults.
const (
	FileName            = "taskboard.yaml"
	DefaultAgentsDir    = "agents"
	DefaultSchema       = "standard"
	DefaultOwner        = "AI Agent"
	DefaultNotes        = "Automated execution"
	DefaultInterpreter  = "python3"
	DefaultLabConfig    = ".htdi-lab.config.json"
	DefaultLogLevel     = "info"
	DefaultJulesQuota   = 15
	defaultClaudeModel  = "claude-sonnet-4-5-20250929"
	defaultCodexModel   = "gpt-5.1-codex"
	defaultGeminiModel  = "gemini-2.5-flash"
	defaultAuditsSubdir = "audits"
)

// DefaultSections is the standard status vocabulary in board order.
var DefaultSections = []string{"Backlog", "Ready", "In Progress", "Review", "Completed", "Blocked"}

// DefaultConfig returns the built-in configuration rooted at root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:         root,
		AgentsDir:    DefaultAgentsDir,
		Schema:       DefaultSchema,
		Sections:     append([]string(nil), DefaultSections...),
		DefaultOwner: DefaultOwner,
		DefaultNotes: DefaultNotes,
		LogLevel:     DefaultLogLevel,
		Interpreter:  DefaultInterpreter,
		LabConfig:    DefaultLabConfig,
		Projects:     map[string]ProjectConfig{},
		Tools:        DefaultTools(),
	}
}

// DefaultTools returns the built-in agent CLI table. Output paths are
// relative to the board root.
func DefaultTools() map[string]ToolConfig {
	audits := DefaultAgentsDir + "/" + defaultAuditsSubdir
	return map[string]ToolConfig{
		"claude": {
			Label:    "Claude Sonnet 4.5 (Claude CLI)",
			Binary:   "claude",
			Model:    defaultClaudeModel,
			Output:   audits + "/claude-summary.md",
			Workflow: ".github/workflows/agents-claude.yml",
		},
		"codex": {
			Label:    "OpenAI via Codex CLI",
			Binary:   "codex",
			Model:    defaultCodexModel,
			Output:   audits + "/openai-summary.md",
			Workflow: ".github/workflows/agents-codex.yml",
		},
		"gemini": {
			Label:    "Gemini 2.5 Flash (Gemini CLI)",
			Binary:   "gemini",
			Model:    defaultGeminiModel,
			Output:   "gemini-output.md",
			Workflow: ".github/workflows/agents-gemini.yml",
		},
		"jules": {
			Label:      "Jules (Google asynchronous agent)",
			Binary:     "jules",
			Output:     audits + "/jules-summary.md",
			Workflow:   ".github/workflows/agents-jules-bridge.yml",
			DailyLimit: DefaultJulesQuota,
		},
	}
}
