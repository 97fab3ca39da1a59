// Package config loads clipcache settings from TOML.
//
// Defaults live in defaults.go. Load applies them, decodes the file on top,
// normalizes string fields and validates the result.
package config
