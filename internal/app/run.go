package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/launchenv/internal/ctxlog"
	"github.com/vk/launchenv/internal/dartdefine"
	"github.com/vk/launchenv/internal/envfile"
	"github.com/vk/launchenv/internal/fsutil"
	"github.com/vk/launchenv/internal/launchjson"
	"github.com/vk/launchenv/internal/targets"
)

const (
	vscodeDir      = ".vscode"
	launchFileName = "launch.json"
)

// defaultDocument is the skeleton VS Code itself writes for a fresh
// launch.json; it seeds the transform when the file does not exist yet.
const defaultDocument = `{
  "version": "0.2.0",
  "configurations": []
}`

// Run executes one read-transform-write pass for every launch document.
// Per-target failures are logged and joined rather than aborting the
// remaining work; a document is never partially written.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	paths, err := a.launchDocumentPaths()
	if err != nil {
		return fmt.Errorf("failed to locate launch documents: %w", err)
	}
	a.logger.Debug("Launch documents resolved.", "count", len(paths))

	var errs []error
	for _, path := range paths {
		if err := a.applyToDocument(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return errors.Join(errs...)
}

// launchDocumentPaths resolves which launch.json files this run touches.
func (a *App) launchDocumentPaths() ([]string, error) {
	if a.config.All {
		found, err := fsutil.FindFilesByName(a.config.ProjectPath, launchFileName)
		if err != nil {
			return nil, err
		}
		var paths []string
		for _, p := range found {
			// Only launch.json files that actually sit in a .vscode
			// directory are launch documents.
			if filepath.Base(filepath.Dir(p)) == vscodeDir {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			return paths, nil
		}
	}

	return []string{filepath.Join(a.config.ProjectPath, vscodeDir, launchFileName)}, nil
}

// applyToDocument reads one launch document, applies every target to it in
// memory, and persists the result with a single write. A failed target is
// skipped; the document is written only when at least one target applied.
//
// Each target's pass re-normalizes every entry, so with multiple targets the
// last applied target's define set lands on all entries; per-target identity
// (name, program) still comes from each target's own create pass.
func (a *App) applyToDocument(ctx context.Context, launchPath string) error {
	logger := ctxlog.FromContext(ctx)

	text, seeded, err := a.readLaunchDocument(launchPath)
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("Launch document missing, starting from skeleton.", "path", launchPath)
	}

	var errs []error
	applied := 0
	for _, t := range a.targets {
		args, err := a.defineArgs(t)
		if err != nil {
			logger.Error("Target failed, skipping.", "launch_file", launchPath, "target", t.Name, "error", err)
			errs = append(errs, fmt.Errorf("target %q on %s: %w", t.Name, launchPath, err))
			continue
		}
		logger.Debug("Define tokens built.", "target", t.Name, "tokens", len(args))

		next, err := launchjson.Transform(ctx, text, args, a.transformOptions(t))
		if err != nil {
			logger.Error("Target failed, skipping.", "launch_file", launchPath, "target", t.Name, "error", err)
			errs = append(errs, fmt.Errorf("target %q on %s: %w", t.Name, launchPath, err))
			continue
		}
		text = next
		applied++
	}

	if applied == 0 {
		return errors.Join(errs...)
	}

	if a.config.DryRun {
		fmt.Fprintln(a.outW, text)
		return errors.Join(errs...)
	}

	if err := os.MkdirAll(filepath.Dir(launchPath), 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", vscodeDir, err)
	}
	if err := os.WriteFile(launchPath, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing launch document: %w", err)
	}
	logger.Info("Launch document updated.", "path", launchPath, "targets_applied", applied)

	return errors.Join(errs...)
}

// defineArgs builds the fresh argument token sequence for one target: the
// env-file pairs first, then the target's own defines, so the latter win
// under the IDE's last-wins semantics.
func (a *App) defineArgs(t targets.Target) ([]string, error) {
	envPath := t.EnvFile
	if envPath == "" {
		envPath = a.config.EnvFile
	}
	if !filepath.IsAbs(envPath) {
		envPath = filepath.Join(a.config.ProjectPath, envPath)
	}

	pairs, err := envfile.Read(envPath)
	if err != nil {
		return nil, err
	}
	pairs = append(pairs, t.Defines...)

	return dartdefine.BuildArgs(dartdefine.FormatString(pairs)), nil
}

// readLaunchDocument returns the document text, seeding the default skeleton
// when the file does not exist yet.
func (a *App) readLaunchDocument(path string) (raw string, seeded bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultDocument, true, nil
		}
		return "", false, fmt.Errorf("reading launch document: %w", err)
	}
	return string(data), false, nil
}

// transformOptions maps a target onto the transform's identity options. An
// empty name stays unset so the transform keeps its null-name behavior; an
// empty program falls back to lib/main.dart when the project has one.
func (a *App) transformOptions(t targets.Target) launchjson.Options {
	var opts launchjson.Options
	if t.Name != "" {
		name := t.Name
		opts.Name = &name
	}

	program := t.Program
	if program == "" {
		candidate := filepath.Join("lib", "main.dart")
		if _, err := os.Stat(filepath.Join(a.config.ProjectPath, candidate)); err == nil {
			program = candidate
		}
	}
	if program != "" {
		opts.Program = &program
	}

	return opts
}
