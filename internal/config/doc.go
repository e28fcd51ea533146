// Package config loads, normalizes, and validates subfix configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SUBFIX_EDITOR and EDITOR. The Config type centralizes every knob the CLI
// and the correction engine need, so tuning like the merge threshold and the
// garbage cutoff is always explicit configuration, never a module constant.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical values, and clear validation errors.
package config
