// Package catalog provides the pipeline orchestration logic for
// cataloging and organizing a local music library.
//
// # Manager
//
// The Manager coordinates the entire run:
//
//  1. Scan the library root for audio files and read their tags
//  2. Enrich missing metadata from MusicBrainz (optional)
//  3. Summarize library metrics
//  4. Export the catalog as CSV and/or SQLite
//  5. Organize files into the Artist/Album layout (optional)
//
// # Basic Usage
//
//	manager := catalog.NewManager(settings, func(event catalog.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Run(ctx, "/music/incoming")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Tracking
//
// Progress is reported two ways. Human-readable messages arrive via a
// callback that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Numeric per-stage progress is polled with GetProgress, which returns
// the running stage and its (done, total) counts. This suits UIs that
// redraw on a timer.
//
// # Warnings
//
// Per-file problems never abort a run. They are collected and written
// as scan_warnings.log and organize_warnings.log into the output
// directory.
package catalog
