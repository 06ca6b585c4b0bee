package targets

import "github.com/vk/launchenv/internal/dartdefine"

// Target describes one launch configuration entry to inject defines into.
type Target struct {
	// Name of the configuration entry to locate or create.
	Name string

	// Program is the program path for a created entry. Empty means unset;
	// the application may infer one from the project layout.
	Program string

	// EnvFile is the env file path relative to the project root. Empty
	// selects the application-level default.
	EnvFile string

	// Defines are extra pairs declared directly in the targets file, in
	// source order. They are appended after the env-file pairs, so they win
	// under the IDE's last-wins semantics.
	Defines []dartdefine.Pair
}
