package lab

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gorewood/taskboard/internal/atomicfile"
)

// Registry is the lab's agent registry. Keys this package does not manage
// are kept as read.
type Registry struct {
	fields map[string]any
}

// LoadRegistry reads path. A missing file yields an empty registry and
// exists=false.
func LoadRegistry(path string) (reg *Registry, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{fields: map[string]any{"houses": []any{}}}, false, nil
		}
		return nil, false, fmt.Errorf("read registry: %w", err)
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, true, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &Registry{fields: fields}, true, nil
}

// Save stamps generatedAt with now (UTC) and writes the registry.
func (r *Registry) Save(path string, now time.Time) error {
	r.fields["generatedAt"] = now.UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r.fields, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	return atomicfile.Write(path, append(data, '\n'))
}

// Houses returns the house entries that are JSON objects.
func (r *Registry) Houses() []map[string]any {
	list, _ := r.fields["houses"].([]any)
	houses := make([]map[string]any, 0, len(list))
	for _, h := range list {
		if house, ok := h.(map[string]any); ok {
			houses = append(houses, house)
		}
	}
	return houses
}

// House returns the entry with id, or nil.
func (r *Registry) House(id string) map[string]any {
	for _, house := range r.Houses() {
		if houseID, _ := house["id"].(string); houseID == id {
			return house
		}
	}
	return nil
}

func (r *Registry) addHouse(house map[string]any) {
	list, _ := r.fields["houses"].([]any)
	r.fields["houses"] = append(list, house)
}

// AgentCount returns the number of agents listed for a house entry.
func AgentCount(house map[string]any) int {
	agents, _ := house["agents"].([]any)
	return len(agents)
}

// SyncResult reports what Sync did.
type SyncResult struct {
	House   string `json:"house"`
	Agents  int    `json:"agents"`
	Created bool   `json:"created"`
	Saved   bool   `json:"saved"`
}

// Sync replaces the house's agent list with agents and saves the registry.
// The house entry is created when absent. With no agents nothing is
// written.
func Sync(cfg *Config, registryPath string, agents []Agent, now time.Time) (SyncResult, error) {
	result := SyncResult{House: cfg.House.ID, Agents: len(agents)}
	if len(agents) == 0 {
		return result, nil
	}

	reg, _, err := LoadRegistry(registryPath)
	if err != nil {
		return result, err
	}

	house := reg.House(cfg.House.ID)
	if house == nil {
		house = map[string]any{
			"id":   cfg.House.ID,
			"name": cfg.House.Name,
			"type": cfg.House.Type,
		}
		reg.addHouse(house)
		result.Created = true
	}

	list := make([]any, 0, len(agents))
	for _, a := range agents {
		list = append(list, a)
	}
	house["agents"] = list

	if err := reg.Save(registryPath, now); err != nil {
		return result, err
	}
	result.Saved = true
	return result, nil
}

// Register adds this house, without agents, to an existing registry. It
// returns false when the house is already present.
func Register(cfg *Config, registryPath string, now time.Time) (bool, error) {
	reg, exists, err := LoadRegistry(registryPath)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("%w: %s", ErrRegistryMissing, registryPath)
	}
	if reg.House(cfg.House.ID) != nil {
		return false, nil
	}

	reg.addHouse(map[string]any{
		"id":               cfg.House.ID,
		"name":             cfg.House.Name,
		"type":             cfg.House.Type,
		"agentshipVersion": cfg.House.AgentshipVersion,
		"description":      cfg.House.Description,
		"repository":       cfg.House.Repository.URL,
		"agents":           []any{},
	})
	if err := reg.Save(registryPath, now); err != nil {
		return false, err
	}
	return true, nil
}
