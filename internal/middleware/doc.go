// Package middleware provides HTTP middleware for the web server:
// request ID propagation, structured request logging, panic recovery,
// rate limiting, and security headers. Middleware ordering matters;
// RequestID must come first so every downstream log line carries a
// trace_id.
package middleware
