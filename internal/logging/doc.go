// Package logging builds the slog loggers used across bindery.
//
// Two output formats are supported: a human-oriented console format for
// interactive use (colored when stdout is a terminal) and line-delimited JSON
// for log shipping. Components attach a stable component attribute via
// NewComponentLogger so log streams can be filtered per subsystem.
package logging
