package lab

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var syncTime = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

const labConfig = `{
  // local house
  "house": {
    "id": "agentship-x-htdi",
    "name": "CODE Platformer AI",
    "type": "game",
    "agentshipVersion": "1.0",
    "description": "Platformer",
    "repository": {"url": "https://example.com/repo.git"},
  },
  "lab": {"enabled": true, "apiUrl": "http://lab.local:3000/", "registryPath": "var/agents.registry.json"}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func loadTestConfig(t *testing.T, root string) *Config {
	t.Helper()
	path := filepath.Join(root, ".htdi-lab.config.json")
	writeFile(t, path, labConfig)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	return cfg
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	cfg := loadTestConfig(t, root)
	if cfg.House.ID != "agentship-x-htdi" || cfg.House.Repository.URL != "https://example.com/repo.git" {
		t.Errorf("house = %+v", cfg.House)
	}
	if !cfg.Lab.Enabled {
		t.Error("lab should be enabled")
	}
	if got, want := cfg.RegistryPath(root), filepath.Join(root, "var", "agents.registry.json"); got != want {
		t.Errorf("RegistryPath() = %q, want %q", got, want)
	}

	if _, err := LoadConfig(filepath.Join(root, "absent.json")); !errors.Is(err, ErrConfigMissing) {
		t.Errorf("LoadConfig(missing) error = %v", err)
	}
	bad := filepath.Join(root, "bad.json")
	writeFile(t, bad, `{"house": {}}`)
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig(no id) error = %v", err)
	}
}

func TestScanProfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "TEMPLATE.json"), `{"name": "Template"}`)
	writeFile(t, filepath.Join(dir, "nova.json"), `{
		"agentId": "nova",
		"name": "Nova",
		"role": "Architect",
		"bio": "`+strings.Repeat("x", 250)+`",
		"favoriteColor": "teal"
	}`)
	writeFile(t, filepath.Join(dir, "pip.json"), `{"quote": "Ship it"}`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{not json`)

	agents, err := ScanProfiles(dir, "agents/profiles", nil)
	if err != nil {
		t.Fatalf("ScanProfiles() error = %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("agents = %+v, want 2", agents)
	}

	nova, pip := agents[0], agents[1]
	if nova.Alias != "agent.nova" || nova.Role != "Architect" || nova.Category != "worker" {
		t.Errorf("nova = %+v", nova)
	}
	if len(nova.Description) != maxDescriptionLen {
		t.Errorf("description length = %d, want %d", len(nova.Description), maxDescriptionLen)
	}
	if nova.FavoriteColor != "teal" || nova.Model3D != nil {
		t.Errorf("extras = %v, %v", nova.FavoriteColor, nova.Model3D)
	}
	if nova.PromptPath != "agents/profiles/nova.json" {
		t.Errorf("PromptPath = %q", nova.PromptPath)
	}
	if pip.Alias != "agent.pip" || pip.Name != "pip" || pip.Description != "Ship it" || pip.Provider != "Unknown" {
		t.Errorf("pip = %+v", pip)
	}
}

func TestScanProfiles_MissingDir(t *testing.T) {
	agents, err := ScanProfiles(filepath.Join(t.TempDir(), "none"), "p", nil)
	if err != nil || len(agents) != 0 {
		t.Errorf("ScanProfiles(missing) = %v, %v", agents, err)
	}
}

func readRegistry(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	return fields
}

func TestSync_CreatesHouseAndPreservesKeys(t *testing.T) {
	root := t.TempDir()
	cfg := loadTestConfig(t, root)
	path := cfg.RegistryPath(root)
	writeFile(t, path, `{"version": 3, "houses": [{"id": "other", "name": "Other", "agents": [1]}]}`)

	agents := []Agent{{Alias: "agent.nova", Name: "Nova", Status: "active"}}
	result, err := Sync(cfg, path, agents, syncTime)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !result.Created || !result.Saved || result.Agents != 1 {
		t.Errorf("result = %+v", result)
	}

	fields := readRegistry(t, path)
	if fields["version"] != float64(3) {
		t.Errorf("version = %v, want preserved", fields["version"])
	}
	if fields["generatedAt"] != "2026-01-15T10:00:00Z" {
		t.Errorf("generatedAt = %v", fields["generatedAt"])
	}
	houses := fields["houses"].([]any)
	if len(houses) != 2 {
		t.Fatalf("houses = %v", houses)
	}
	mine := houses[1].(map[string]any)
	if mine["id"] != "agentship-x-htdi" || len(mine["agents"].([]any)) != 1 {
		t.Errorf("house = %v", mine)
	}

	// A second sync replaces agents wholesale.
	result, err = Sync(cfg, path, []Agent{{Alias: "a"}, {Alias: "b"}}, syncTime)
	if err != nil || result.Created {
		t.Fatalf("second Sync() = %+v, %v", result, err)
	}
	reg, _, err := LoadRegistry(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := AgentCount(reg.House("agentship-x-htdi")); got != 2 {
		t.Errorf("agents = %d, want 2", got)
	}
}

func TestSync_NoAgentsWritesNothing(t *testing.T) {
	root := t.TempDir()
	cfg := loadTestConfig(t, root)
	path := cfg.RegistryPath(root)

	result, err := Sync(cfg, path, nil, syncTime)
	if err != nil || result.Saved {
		t.Fatalf("Sync(nil) = %+v, %v", result, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("registry written without agents")
	}
}

func TestRegister(t *testing.T) {
	root := t.TempDir()
	cfg := loadTestConfig(t, root)
	path := cfg.RegistryPath(root)

	if _, err := Register(cfg, path, syncTime); !errors.Is(err, ErrRegistryMissing) {
		t.Fatalf("Register(no registry) error = %v", err)
	}

	writeFile(t, path, `{"houses": []}`)
	added, err := Register(cfg, path, syncTime)
	if err != nil || !added {
		t.Fatalf("Register() = %v, %v", added, err)
	}
	added, err = Register(cfg, path, syncTime)
	if err != nil || added {
		t.Errorf("second Register() = %v, %v; want false", added, err)
	}

	house := readRegistry(t, path)["houses"].([]any)[0].(map[string]any)
	if house["repository"] != "https://example.com/repo.git" || house["agentshipVersion"] != "1.0" {
		t.Errorf("house = %v", house)
	}
}

type fakeDoer struct {
	req    *http.Request
	body   string
	status int
	err    error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.req = req
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		f.body = string(data)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{StatusCode: f.status, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func TestNotify(t *testing.T) {
	root := t.TempDir()
	cfg := loadTestConfig(t, root)

	tests := []struct {
		name    string
		doer    *fakeDoer
		enabled bool
		wantErr bool
		wantReq bool
	}{
		{name: "ok", doer: &fakeDoer{status: http.StatusOK}, enabled: true, wantReq: true},
		{name: "server error", doer: &fakeDoer{status: http.StatusBadGateway}, enabled: true, wantErr: true, wantReq: true},
		{name: "unreachable", doer: &fakeDoer{err: errors.New("connection refused")}, enabled: true, wantErr: true, wantReq: true},
		{name: "disabled", doer: &fakeDoer{status: http.StatusOK}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *cfg
			c.Lab.Enabled = tt.enabled
			err := NewNotifier(tt.doer, nil).Notify(context.Background(), &c, "bidirectional-sync")
			if tt.wantErr != (err != nil) {
				t.Fatalf("Notify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnavailable) {
				t.Errorf("error %v does not wrap ErrUnavailable", err)
			}
			if tt.wantReq != (tt.doer.req != nil) {
				t.Fatalf("request sent = %v, want %v", tt.doer.req != nil, tt.wantReq)
			}
			if !tt.wantReq {
				return
			}
			if got := tt.doer.req.URL.String(); got != "http://lab.local:3000/api/run-command" {
				t.Errorf("url = %q", got)
			}
			if _, ok := tt.doer.req.Context().Deadline(); !ok {
				t.Error("request has no deadline")
			}
			want := `{"command":"echo","args":["Sync completed for CODE Platformer AI: bidirectional-sync"]}`
			if tt.doer.body != want {
				t.Errorf("body = %s, want %s", tt.doer.body, want)
			}
		})
	}
}
