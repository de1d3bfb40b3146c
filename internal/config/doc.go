// Package config loads, normalizes, and validates relabel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the RELABEL_CONFIG and
// XDG_STATE_HOME environment fallbacks. The Config type centralizes the
// extension filters, output and state locations, history and logging
// settings the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lowercase extension lists, and clear validation errors.
package config
