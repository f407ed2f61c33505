// Package exporter writes finished analysis reports to disk.
//
// Three formats are supported:
//
// JSON: the full report, indented, for the dashboard and API consumers.
//
// CSV: the promo monthly breakdown, with a UTF-8 BOM so Excel opens it
// cleanly.
//
// XLSX: a two-sheet workbook (Summary, Monthly Breakdown) for ad-hoc
// spreadsheet work.
package exporter
