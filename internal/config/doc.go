// Package config provides configuration management for tunetidy.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of option combinations
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Exports to ./output in both CSV and SQLite form
//	// Organizing and enrichment disabled
//	// MusicBrainz etiquette defaults (min score 85, 1.1s delay)
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.OutputDir = "/music/reports"
//	err := settings.Save("/path/to/config.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Export destination and format
//   - Organizing (destination root, dry run, copy vs move)
//   - MusicBrainz enrichment and tag write-back
//   - Scan concurrency
package config
