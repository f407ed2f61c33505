// Package dataset maps the three CSV exports (membership accounts, financial
// transactions, and Jotform lead submissions) onto typed records for the
// analysis engine.
//
// This package owns the parsing boundary: it reads tabular text, locates the
// exact source-export headers, and produces fully-materialized record slices.
// Fatal errors (unreadable input, invalid CSV framing, a required header
// missing, a dataset above the configured row ceiling) are raised here, before
// the analysis engine runs. Per-row irregularities - blank emails, missing
// discount codes, unparseable dates - are not errors at this layer; the
// engine's contracts define how each is excluded downstream.
package dataset
