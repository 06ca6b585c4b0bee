// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the run lifecycle that walks launch
// documents and injection targets, decoupled from any specific entrypoint.
package app
