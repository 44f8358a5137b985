// Package export persists the scanned catalog to CSV files or a SQLite
// database.
//
// # CSV
//
// Two files are produced: a per-track listing and a metrics summary
// with the per-format size distribution. Sizes are reported in
// megabytes with two decimals so spreadsheets stay readable.
//
// # SQLite
//
// One database holds three tables: tracks, library_metrics and
// format_metrics. Each export replaces the previous contents inside a
// single transaction.
package export
