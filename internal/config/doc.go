// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides type-safe
// access to the settings of the analysis model, the speech backend, the
// Notion archive and the HTTP server while keeping configuration details
// separate from business logic.
package config
