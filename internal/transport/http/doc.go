// Package http contains the HTTP handlers for the web server. Handlers
// stay thin: they parse uploads, delegate to the service layer and render
// JSON responses, with failures reported as RFC 7807 problem details.
package http
