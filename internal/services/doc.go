// Package services defines shared utilities consumed by the request handlers
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers and method
//     names for logging.
//   - Structured error markers plus the Mark and Wrap helpers that classify
//     failures (validation, configuration, external tool, subtitle parsing,
//     output stream) without losing the caller-facing message.
//
// Use these helpers when wiring new handlers so operational behaviour stays
// uniform across methods.
package services
