// Package cli parses command-line arguments into an app.Config and owns the
// usage text and exit-code mapping for the launchenv binary.
package cli
