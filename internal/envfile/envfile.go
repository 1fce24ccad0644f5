// Package envfile reads KEY=VALUE files (typically <root>/.env) holding the
// API keys agent CLIs expect. Values are merged into a child process
// environment; the process's own environment wins.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Read parses path into a map. A missing file yields nil and no error.
func Read(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only

	vars := make(map[string]string)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, ok := parseLine(line); ok {
			vars[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return vars, nil
}

// Merge returns environ plus every var whose key environ does not already
// set to a non-empty value. Added entries are in key order.
func Merge(environ []string, vars map[string]string) []string {
	set := make(map[string]bool, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok && value != "" {
			set[key] = true
		}
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		if !set[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	merged := append([]string(nil), environ...)
	for _, key := range keys {
		merged = append(merged, key+"="+vars[key])
	}
	return merged
}

// parseLine splits KEY=VALUE, dropping an export prefix and one layer of
// matching quotes.
func parseLine(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(key), "export "))
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}
