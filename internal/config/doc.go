// Package config loads, normalizes, and validates tagreport configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the three
// path parameters (TAGREPORT_SCAN_DIR, TAGREPORT_CSV_PATH,
// TAGREPORT_WORKBOOK_PATH). Command-line flags are layered on top by the CLI
// through Overrides.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical extensions, and clear validation errors.
package config
