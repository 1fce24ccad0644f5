package config

// Config is the resolved taskboard configuration. It is built once per
// process by Load and handed to every component.
type Config struct {
	// Root is the board root directory. Set by Load, never read from file.
	Root string `mapstructure:"-"`

	// AgentsDir holds projects, ledger, handoffs, prompts and logs,
	// relative to Root.
	AgentsDir string `mapstructure:"agents_dir"`

	// Schema names the default table layout: "standard" or "legacy".
	Schema string `mapstructure:"schema"`

	// Sections lists the recognised status sections in board order.
	Sections []string `mapstructure:"sections"`

	DefaultOwner string `mapstructure:"default_owner"`
	DefaultNotes string `mapstructure:"default_notes"`

	LogLevel string `mapstructure:"log_level"`

	// Interpreter runs extra generator scripts.
	Interpreter string   `mapstructure:"interpreter"`
	Generators  []string `mapstructure:"generators"`

	LabConfig string `mapstructure:"lab_config"`

	Projects map[string]ProjectConfig `mapstructure:"projects"`
	Tools    map[string]ToolConfig    `mapstructure:"tools"`
}

// ProjectConfig holds per-project overrides.
type ProjectConfig struct {
	Schema  string     `mapstructure:"schema"`
	ArchDoc string     `mapstructure:"arch_doc"`
	Hints   []FileHint `mapstructure:"hints"`
}

// FileHint suggests file locations for task IDs with Prefix whose numeric
// part falls within [From, To].
type FileHint struct {
	Prefix string   `mapstructure:"prefix"`
	From   int      `mapstructure:"from"`
	To     int      `mapstructure:"to"`
	Files  []string `mapstructure:"files"`
}

// ToolConfig describes one external agent CLI.
type ToolConfig struct {
	Label    string `mapstructure:"label"`
	Binary   string `mapstructure:"binary"`
	Model    string `mapstructure:"model"`
	Output   string `mapstructure:"output"`
	Workflow string `mapstructure:"workflow"`

	// DailyLimit is a soft quota; zero means unlimited.
	DailyLimit int `mapstructure:"daily_limit"`
}
