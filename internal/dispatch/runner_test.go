package dispatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecRunner_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		binary string
	}{
		{name: "bare name", binary: "taskboard-missing-agent-cli"},
		{name: "absolute path", binary: filepath.Join(dir, "bin", "claude")},
		{name: "relative path", binary: "./missing-claude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExecRunner{}.Run(context.Background(), Command{Name: tt.binary, Dir: dir})
			if !errors.Is(err, ErrToolNotInstalled) {
				t.Errorf("Run() error = %v, want ErrToolNotInstalled", err)
			}
		})
	}
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	out, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err >&2; exit 3"},
	})
	if err == nil {
		t.Fatal("Run() error = nil, want exit status")
	}
	if errors.Is(err, ErrToolNotInstalled) {
		t.Errorf("Run() error = %v, want plain exit error", err)
	}
	if strings.TrimSpace(out.Stdout) != "out" || strings.TrimSpace(out.Stderr) != "err" {
		t.Errorf("Output = %+v", out)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInvoke_ExecRunner(t *testing.T) {
	tests := []struct {
		name       string
		binary     func(t *testing.T) string
		wantErr    error
		wantDetail string
	}{
		{
			name:       "missing path binary",
			binary:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "claude") },
			wantErr:    ErrToolNotInstalled,
			wantDetail: "ensure it is on PATH",
		},
		{
			name:       "failing binary",
			binary:     func(t *testing.T) string { return writeScript(t, "echo err >&2; exit 3") },
			wantErr:    ErrToolFailed,
			wantDetail: "err",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, cfg := newTestDispatcher(t, ExecRunner{})
			claude := cfg.Tools["claude"]
			claude.Binary = tt.binary(t)
			cfg.Tools["claude"] = claude

			_, err := d.Invoke(context.Background(), mustTool(t, cfg, "claude"), sampleTask, "p")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Invoke() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantDetail) {
				t.Errorf("error %q missing %q", err, tt.wantDetail)
			}
			if _, statErr := os.Stat(cfg.RootPath(claude.Output)); !os.IsNotExist(statErr) {
				t.Error("summary file written on failure")
			}
		})
	}
}
