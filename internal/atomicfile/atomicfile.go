// Package atomicfile writes whole files via write-to-temp-then-rename so a
// reader never observes a half-written board, ledger, or registry.
package atomicfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/gorewood/taskboard/internal/mdtable"
)

const filePerms = 0o644

// Write replaces path with data, creating parent directories as needed.
func Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	// atomic.WriteFile leaves new files at the temp file's 0600.
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteMarkdown normalises text with mdtable.Normalize and writes it.
func WriteMarkdown(path, text string) error {
	return Write(path, []byte(mdtable.Normalize(text)))
}
