// Package app wires the application together: it configures the logger,
// loads the pipeline model from disk, registers the built-in step modules,
// and drives the sequential runner. Everything above it (cmd/cli) only
// handles process concerns; everything below it is a focused subsystem.
package app
