// Package main hosts the tagreport CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration (file, environment, flags),
// builds the logger, and hands off to internal/pipeline. Commands only format
// results for the terminal: go-pretty tables for humans, JSON for scripts.
package main
