// Package services contains the application service layer sitting between the
// HTTP transport and the analysis engine. Services validate request-scoped
// input, invoke the pure engine, and record observability instruments; they
// hold no per-request state of their own.
package services
