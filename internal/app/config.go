package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath string // project root containing .vscode/ and the env file
	EnvFile     string // env file path, relative to ProjectPath
	TargetsPath string // explicit targets file; empty enables auto-detection
	EntryName   string // configuration entry name; empty means unset
	Program     string // program path for created entries; empty means infer
	All         bool   // update every launch.json found under ProjectPath
	DryRun      bool   // print the result instead of writing it

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	if cfg.EnvFile == "" {
		return nil, errors.New("EnvFile is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
