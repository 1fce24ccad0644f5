package lab

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/jsonc"
)

const (
	templateProfile   = "TEMPLATE.json"
	maxDescriptionLen = 200
)

// Agent is a registry entry built from a profile file.
type Agent struct {
	Alias         string `json:"alias"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	PromptPath    string `json:"promptPath"`
	Description   string `json:"description"`
	Provider      string `json:"provider"`
	Model3D       any    `json:"model3D"`
	FavoriteColor any    `json:"favoriteColor"`
}

// ScanProfiles reads every *.json profile in dir except TEMPLATE.json, in
// filename order. promptDir is the profile directory as recorded in
// promptPath. Unparseable profiles are logged and skipped; a missing dir
// yields no agents.
func ScanProfiles(dir, promptDir string, logger *log.Logger) ([]Agent, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob profiles: %w", err)
	}

	var agents []Agent
	for _, path := range matches {
		name := filepath.Base(path)
		if name == templateProfile {
			continue
		}
		agent, err := readProfile(path, promptDir)
		if err != nil {
			logger.Warn("skipping profile", "file", name, "err", err)
			continue
		}
		logger.Debug("found agent", "name", agent.Name, "alias", agent.Alias)
		agents = append(agents, agent)
	}
	return agents, nil
}

func readProfile(path, promptDir string) (Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Agent{}, err
	}
	var profile map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &profile); err != nil {
		return Agent{}, err
	}

	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	description := stringField(profile, "bio", stringField(profile, "quote", "No description"))

	return Agent{
		Alias:         "agent." + stringField(profile, "agentId", stem),
		Name:          stringField(profile, "name", stem),
		Role:          stringField(profile, "role", "Builder"),
		Category:      stringField(profile, "category", "worker"),
		Status:        "active",
		PromptPath:    filepath.ToSlash(filepath.Join(promptDir, name)),
		Description:   truncate(description, maxDescriptionLen),
		Provider:      stringField(profile, "provider", "Unknown"),
		Model3D:       profile["model3D"],
		FavoriteColor: profile["favoriteColor"],
	}, nil
}

func stringField(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return def
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
