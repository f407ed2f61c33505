// Package config provides centralized configuration management for MemberPulse.
// It handles loading configuration from multiple sources, validation, and provides
// a type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern MEMBERPULSE_* for namespacing:
//
//	MEMBERPULSE_SERVER_PORT=8080
//	MEMBERPULSE_LOGGING_LEVEL=info
//	MEMBERPULSE_ANALYSIS_FREE_TRIAL_CUTOFF=2025-08-06
//	MEMBERPULSE_ANALYSIS_MAX_ROWS=250000
//
// The package also owns the fixed analysis constants the engine honors
// exactly: the promotional discount-code sentinel, the cancellation sentinel,
// the free-trial cutoff date, and the textual date layout of the source
// exports. See constants.go.
package config
