// Package launchjson implements the read-modify-write transform over a VS
// Code launch.json document: locate or create a named configuration entry,
// strip previously injected --dart-define pairs without touching
// user-authored arguments, and append the freshly generated pairs.
//
// The transform is a pure in-memory operation over document text; callers
// own all file I/O. Single-line comments in the input are stripped before
// parsing and are not restored on output.
package launchjson
