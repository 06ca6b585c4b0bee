package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/launchenv/internal/ctxlog"
	"github.com/vk/launchenv/internal/targets"
)

// defaultTargetsFile is picked up from the project root when no explicit
// targets path is configured.
const defaultTargetsFile = "launchenv.hcl"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	targets []targets.Target
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and the
// project's resolved target list.
func NewApp(outW io.Writer, cfg *Config, loader *targets.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	targetList, err := loadTargets(ctx, cfg, loader)
	if err != nil {
		// A failure to load the targets file is a fatal startup error.
		panic(fmt.Errorf("failed to load targets: %w", err))
	}
	logger.Debug("Targets resolved.", "count", len(targetList))

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		targets: targetList,
	}
}

// Targets returns the application's resolved target list. This is primarily
// for testing.
func (a *App) Targets() []targets.Target {
	return a.targets
}

// loadTargets resolves the target list. An explicitly configured targets
// file must parse; the default one is used only when present; with neither,
// a single target is synthesized from the CLI-supplied configuration.
func loadTargets(ctx context.Context, cfg *Config, loader *targets.Loader) ([]targets.Target, error) {
	path := cfg.TargetsPath
	if path == "" {
		candidate := filepath.Join(cfg.ProjectPath, defaultTargetsFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	if path == "" {
		return []targets.Target{{
			Name:    cfg.EntryName,
			Program: cfg.Program,
			EnvFile: cfg.EnvFile,
		}}, nil
	}

	return loader.Load(ctx, path)
}
