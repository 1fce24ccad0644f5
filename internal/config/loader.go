// Package config loads taskboard settings and resolves the directories the
// other packages read from and write to.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TASKBOARD_LOG_LEVEL.
const EnvPrefix = "TASKBOARD"

// Load builds the configuration for the board at root.
//
// Precedence, lowest first: built-in defaults, the user file
// Dir()/taskboard.yaml, the board file (file when non-empty, else
// root/taskboard.yaml when present), TASKBOARD_* environment variables. An
// explicit file that cannot be read is an error; a missing user or default
// board file is not.
func Load(root, file string) (*Config, error) {
	defaults := DefaultConfig(root)

	v := viper.New()
	v.SetDefault("agents_dir", defaults.AgentsDir)
	v.SetDefault("schema", defaults.Schema)
	v.SetDefault("sections", defaults.Sections)
	v.SetDefault("default_owner", defaults.DefaultOwner)
	v.SetDefault("default_notes", defaults.DefaultNotes)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("interpreter", defaults.Interpreter)
	v.SetDefault("generators", []string{})
	v.SetDefault("lab_config", defaults.LabConfig)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	for _, path := range configLayers(root, file) {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Root = root
	cfg.Tools = mergeTools(defaults.Tools, cfg.Tools)
	if cfg.Projects == nil {
		cfg.Projects = map[string]ProjectConfig{}
	}
	if len(cfg.Sections) == 0 {
		cfg.Sections = defaults.Sections
	}
	if os.Getenv(EnvPrefix+"_INTERPRETER") == "" && !v.InConfig("interpreter") {
		if legacy := os.Getenv("PYTHON"); legacy != "" {
			cfg.Interpreter = legacy
		}
	}

	return cfg, nil
}

// configLayers lists the config files to merge, lowest precedence first.
func configLayers(root, file string) []string {
	var layers []string
	if dir := Dir(); dir != "" {
		user := filepath.Join(dir, FileName)
		if _, err := os.Stat(user); err == nil {
			layers = append(layers, user)
		}
	}
	if file != "" {
		return append(layers, file)
	}
	candidate := filepath.Join(root, FileName)
	if _, err := os.Stat(candidate); err == nil {
		layers = append(layers, candidate)
	}
	return layers
}

// Dir returns the user-level taskboard directory. It holds a taskboard.yaml
// shared by every board and template overrides under templates/.
//
// Resolution:
//   - $TASKBOARD_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/taskboard if set
//   - %AppData%/taskboard on Windows
//   - ~/.config/taskboard elsewhere
func Dir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskboard")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "taskboard")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "taskboard")
}

// mergeTools overlays configured tools on the defaults field by field, so a
// file that only changes a model keeps the default binary and output path.
func mergeTools(defaults, configured map[string]ToolConfig) map[string]ToolConfig {
	out := make(map[string]ToolConfig, len(defaults)+len(configured))
	for name, tool := range defaults {
		out[name] = tool
	}
	for name, tool := range configured {
		name = strings.ToLower(name)
		base := out[name]
		if tool.Label != "" {
			base.Label = tool.Label
		}
		if tool.Binary != "" {
			base.Binary = tool.Binary
		}
		if tool.Model != "" {
			base.Model = tool.Model
		}
		if tool.Output != "" {
			base.Output = tool.Output
		}
		if tool.Workflow != "" {
			base.Workflow = tool.Workflow
		}
		if tool.DailyLimit != 0 {
			base.DailyLimit = tool.DailyLimit
		}
		if base.Binary == "" {
			base.Binary = name
		}
		if base.Label == "" {
			base.Label = name
		}
		out[name] = base
	}
	return out
}

// ResolveRoot picks the board root: flagValue, then $TASKBOARD_ROOT, then
// discover (normally the git top level), then the working directory.
func ResolveRoot(flagValue string, discover func() (string, error)) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if env := os.Getenv(EnvPrefix + "_ROOT"); env != "" {
		return filepath.Abs(env)
	}
	if discover != nil {
		if root, err := discover(); err == nil && root != "" {
			return root, nil
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.New("cannot determine working directory")
	}
	return cwd, nil
}
