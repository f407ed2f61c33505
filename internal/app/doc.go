// Package app wires the application together: configuration, logging,
// OpenTelemetry, the analysis service, the chi router with its middleware
// chain, and the HTTP server lifecycle with graceful shutdown.
package app
