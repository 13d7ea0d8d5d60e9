// Package config loads, normalizes, and validates runtime configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AER_LOG_LEVEL. Per-request transcription parameters are not configured here;
// this file only shapes the process itself (logging, asset discovery).
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
