// Package logger configures the process-wide log/slog JSON logger and offers
// a small capture buffer for asserting on log output in tests.
package logger
