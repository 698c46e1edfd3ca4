// Package config loads, normalizes, and validates plexextras configuration.
//
// Settings come from a TOML file (default ~/.config/plexextras/config.toml,
// with a project-local plexextras.toml fallback). Command-line flags overlay
// the loaded values, and anything still missing after that may be collected
// interactively; see the prompt package.
package config
