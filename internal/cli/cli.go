package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/launchenv/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("launchenv", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
launchenv - Inject .env entries into VS Code launch configurations as --dart-define arguments.

Usage:
  launchenv [options] [PROJECT_PATH]

Arguments:
  PROJECT_PATH
    Path to the project root containing .vscode/launch.json. Defaults to the current directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("project", "", "Path to the project root.")
	pFlag := flagSet.String("p", "", "Path to the project root (shorthand).")
	envFileFlag := flagSet.String("env-file", ".env", "Env file path, relative to the project root.")
	eFlag := flagSet.String("e", "", "Env file path, relative to the project root (shorthand).")
	nameFlag := flagSet.String("name", "", "Name of the launch configuration entry to update. Empty targets the nameless entry.")
	nFlag := flagSet.String("n", "", "Name of the launch configuration entry to update (shorthand).")
	programFlag := flagSet.String("program", "", "Program path for a created entry. Defaults to lib/main.dart when the project has one.")
	targetsFlag := flagSet.String("targets", "", "Path to an HCL targets file. Defaults to launchenv.hcl in the project root when present.")
	allFlag := flagSet.Bool("all", false, "Update every .vscode/launch.json found under the project root.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the transformed document instead of writing it.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := "."
	if *projectFlag != "" {
		path = *projectFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Project path determined.", "path", path)

	envFile := *envFileFlag
	if *eFlag != "" {
		envFile = *eFlag
	}

	name := *nameFlag
	if name == "" {
		name = *nFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectPath: path,
		EnvFile:     envFile,
		TargetsPath: *targetsFlag,
		EntryName:   name,
		Program:     *programFlag,
		All:         *allFlag,
		DryRun:      *dryRunFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
