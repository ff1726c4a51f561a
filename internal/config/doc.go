// Package config defines the monitor settings and provides helpers to load,
// validate and save them in YAML format.
//
// Missing keys fall back to the built-in defaults, an unreadable file falls
// back to the complete default record, and command line overrides are applied
// through ApplyOverrides with the same range checks as the file values.
package config
