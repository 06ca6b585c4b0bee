// Package targets loads the optional launchenv.hcl file that declares the
// injection targets for a project: one block per launch configuration entry,
// each with its own program path, env file and extra defines. When no file
// is present the application synthesizes a single target from CLI flags.
package targets
