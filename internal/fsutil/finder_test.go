package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByName(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	paths := []string{
		filepath.Join(root, ".vscode", "launch.json"),
		filepath.Join(root, "packages", "app", ".vscode", "launch.json"),
		filepath.Join(root, "packages", "app", "settings.json"),
	}
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("{}"), 0600))
	}

	// --- Act ---
	found, err := FindFilesByName(root, "launch.json")

	// --- Assert ---
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{paths[0], paths[1]}, found,
		"dot-directories must be searched, non-matching names skipped")
}

func TestFindFilesByName_EmptyName(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_, _ = FindFilesByName(t.TempDir(), "")
	})
}

func TestFindFilesByName_NoMatches(t *testing.T) {
	t.Parallel()

	found, err := FindFilesByName(t.TempDir(), "launch.json")

	require.NoError(t, err)
	assert.Empty(t, found)
}
