// Package metrics summarizes a scanned music library: track and size
// totals, unique artist and album counts, and the size share of each
// audio format.
package metrics
