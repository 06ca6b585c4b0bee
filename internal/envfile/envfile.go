// Package envfile reads .env-style files into ordered define pairs. Value
// parsing (quoting, escapes, export prefixes) is delegated to godotenv; a
// line scan recovers the first-occurrence key order that godotenv's map
// representation discards, because pair order is load-bearing downstream.
package envfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vk/launchenv/internal/dartdefine"
)

// Read parses the env file at path into define pairs ordered by each key's
// first occurrence in the file. Duplicate keys collapse to their last value,
// matching the last-wins semantics the IDE applies anyway.
func Read(path string) ([]dartdefine.Pair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}

	values, err := godotenv.Unmarshal(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing env file %s: %w", path, err)
	}

	pairs := make([]dartdefine.Pair, 0, len(values))
	for _, key := range keyOrder(string(raw)) {
		value, ok := values[key]
		if !ok {
			continue
		}
		pairs = append(pairs, dartdefine.Pair{Key: key, Value: value})
	}
	return pairs, nil
}

// keyOrder scans raw line by line and returns each key once, in
// first-occurrence order.
func keyOrder(raw string) []string {
	var keys []string
	seen := make(map[string]struct{})

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
