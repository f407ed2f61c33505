// Package infrastructure provides the cross-cutting runtime plumbing:
// the single slog-based application logger with trace ID injection, trace
// ID context helpers, and OpenTelemetry initialization (stdout traces,
// Prometheus metrics) together with the application's business instruments.
package infrastructure
