// Package logging constructs the slog loggers used across plexextras.
//
// Two output formats are supported: a human-oriented console format
// (timestamp LEVEL component: message k=v) and line-delimited JSON.
package logging
