package lab

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Errors returned by the lab package.
var (
	ErrConfigMissing   = errors.New("lab config not found")
	ErrInvalidConfig   = errors.New("invalid lab config")
	ErrRegistryMissing = errors.New("lab registry not found")
	ErrUnavailable     = errors.New("lab API not reachable")
)

// Config is the lab config file (.htdi-lab.config.json).
type Config struct {
	House House    `json:"house"`
	Lab   Settings `json:"lab"`
}

// House describes this repository in the registry.
type House struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	AgentshipVersion string     `json:"agentshipVersion"`
	Description      string     `json:"description"`
	Repository       Repository `json:"repository"`
}

// Repository locates the house's source.
type Repository struct {
	URL string `json:"url"`
}

// Settings controls registry sync and API notification.
type Settings struct {
	Enabled      bool   `json:"enabled"`
	APIURL       string `json:"apiUrl"`
	RegistryPath string `json:"registryPath"`
}

// LoadConfig reads a lab config. Comments and trailing commas are allowed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("read lab config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if cfg.House.ID == "" {
		return nil, fmt.Errorf("%w: house.id is required", ErrInvalidConfig)
	}
	if cfg.Lab.RegistryPath == "" {
		return nil, fmt.Errorf("%w: lab.registryPath is required", ErrInvalidConfig)
	}
	return &cfg, nil
}

// RegistryPath resolves lab.registryPath, relative paths against root.
func (c *Config) RegistryPath(root string) string {
	if filepath.IsAbs(c.Lab.RegistryPath) {
		return c.Lab.RegistryPath
	}
	return filepath.Join(root, c.Lab.RegistryPath)
}
