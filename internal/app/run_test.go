package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/launchenv/internal/targets"
)

// newTestProject creates a project directory with an env file and returns
// its path.
func newTestProject(t *testing.T, envContent string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(envContent), 0600))
	return dir
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	if cfg.EnvFile == "" {
		cfg.EnvFile = ".env"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	validated, err := NewConfig(cfg)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return NewApp(out, validated, targets.NewLoader()), out
}

// readLaunchArgs unmarshals the launch document and returns the args of the
// entry with the given name.
func readLaunchArgs(t *testing.T, launchPath, entryName string) []string {
	t.Helper()
	data, err := os.ReadFile(launchPath)
	require.NoError(t, err)

	var doc struct {
		Configurations []struct {
			Name *string  `json:"name"`
			Args []string `json:"args"`
		} `json:"configurations"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, entry := range doc.Configurations {
		if entry.Name != nil && *entry.Name == entryName {
			return entry.Args
		}
	}
	t.Fatalf("no entry named %q in %s", entryName, launchPath)
	return nil
}

func TestRun_CreatesLaunchDocument(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := newTestProject(t, "FOO=1\nBAR=2\n")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "lib", "main.dart"), []byte("void main() {}"), 0600))
	a, _ := newTestApp(t, Config{ProjectPath: project, EntryName: "main"})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	launchPath := filepath.Join(project, ".vscode", "launch.json")
	args := readLaunchArgs(t, launchPath, "main")
	assert.Equal(t, []string{"--dart-define", "FOO=1", "--dart-define", "BAR=2"}, args)

	data, err := os.ReadFile(launchPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"program": "lib/main.dart"`, "program inferred from the project layout")
}

func TestRun_IsIdempotentOnDisk(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := newTestProject(t, "FOO=1\n")
	a, _ := newTestApp(t, Config{ProjectPath: project, EntryName: "main"})

	// --- Act ---
	require.NoError(t, a.Run(context.Background()))
	launchPath := filepath.Join(project, ".vscode", "launch.json")
	first, err := os.ReadFile(launchPath)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))
	second, err := os.ReadFile(launchPath)
	require.NoError(t, err)

	// --- Assert ---
	assert.Equal(t, string(first), string(second))
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := newTestProject(t, "FOO=1\n")
	a, out := newTestApp(t, Config{ProjectPath: project, EntryName: "main", DryRun: true})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"configurations"`)
	_, statErr := os.Stat(filepath.Join(project, ".vscode", "launch.json"))
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the launch document")
}

func TestRun_TargetsFileDrivesMultipleEntries(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := newTestProject(t, "FOO=1\n")
	targetsHCL := `
target "development" {
  program = "lib/main_dev.dart"

  defines {
    FLAVOR = "dev"
  }
}

target "production" {
  program = "lib/main_prod.dart"

  defines {
    FLAVOR = "prod"
  }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(project, "launchenv.hcl"), []byte(targetsHCL), 0600))
	a, _ := newTestApp(t, Config{ProjectPath: project})
	require.Len(t, a.Targets(), 2, "launchenv.hcl must be auto-detected")

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	launchPath := filepath.Join(project, ".vscode", "launch.json")

	data, err := os.ReadFile(launchPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lib/main_dev.dart"`)
	assert.Contains(t, string(data), `"lib/main_prod.dart"`)

	// Every target pass re-normalizes every entry, so after the run both
	// entries carry the last target's define set: env pairs first, then the
	// file defines, which win under last-wins.
	expected := []string{"--dart-define", "FOO=1", "--dart-define", "FLAVOR=prod"}
	assert.Equal(t, expected, readLaunchArgs(t, launchPath, "development"))
	assert.Equal(t, expected, readLaunchArgs(t, launchPath, "production"))
}

func TestRun_AllUpdatesNestedProjects(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := newTestProject(t, "FOO=1\n")
	skeleton := []byte(`{"version": "0.2.0", "configurations": []}`)
	rootLaunch := filepath.Join(project, ".vscode", "launch.json")
	nestedLaunch := filepath.Join(project, "packages", "app", ".vscode", "launch.json")
	for _, p := range []string{rootLaunch, nestedLaunch} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, skeleton, 0600))
	}
	a, _ := newTestApp(t, Config{ProjectPath: project, EntryName: "main", All: true})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	for _, p := range []string{rootLaunch, nestedLaunch} {
		args := readLaunchArgs(t, p, "main")
		assert.Equal(t, []string{"--dart-define", "FOO=1"}, args)
	}
}

func TestRun_MissingEnvFileFailsWithoutWriting(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := t.TempDir() // no .env at all
	a, _ := newTestApp(t, Config{ProjectPath: project, EntryName: "main"})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(project, ".vscode", "launch.json"))
	assert.True(t, os.IsNotExist(statErr), "a failed target must not write its document")
}

func TestRun_MalformedDocumentIsNotOverwritten(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := newTestProject(t, "FOO=1\n")
	launchPath := filepath.Join(project, ".vscode", "launch.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(launchPath), 0o755))
	malformed := []byte(`{ this is not json`)
	require.NoError(t, os.WriteFile(launchPath, malformed, 0600))
	a, _ := newTestApp(t, Config{ProjectPath: project, EntryName: "main"})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	data, readErr := os.ReadFile(launchPath)
	require.NoError(t, readErr)
	assert.Equal(t, malformed, data, "the malformed document must stay untouched")
}

func TestNewApp_PanicsOnBrokenTargetsFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	project := newTestProject(t, "FOO=1\n")
	require.NoError(t, os.WriteFile(filepath.Join(project, "launchenv.hcl"), []byte(`target "x" {`), 0600))
	cfg, err := NewConfig(Config{ProjectPath: project, EnvFile: ".env", LogLevel: "error"})
	require.NoError(t, err)

	// --- Act / Assert ---
	assert.Panics(t, func() {
		NewApp(&bytes.Buffer{}, cfg, targets.NewLoader())
	})
}
