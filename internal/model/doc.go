// Package model defines the core data structures shared across
// tunetidy.
//
// # TrackRecord
//
// TrackRecord is one audio file's identity, location, and descriptive
// metadata. The scanner creates records, the MusicBrainz enricher
// returns an updated copy of the slice, and the organizer and
// exporters consume them read-only:
//
//	result, _ := scan.Scan(ctx, "/music/incoming", scan.Options{})
//	for _, rec := range result.Records {
//	    fmt.Printf("%s - %s\n", rec.Artist, rec.Title)
//	}
//
// # Results
//
// ScanResult and OrganizeResult aggregate the outcome of one pass,
// including ordered Warnings. LibraryMetrics summarizes a collection
// for export.
//
// # Warnings
//
// Warning is a structured non-fatal failure (kind + path + cause).
// Its String method renders the stable log-line form that the CLI
// writes to scan_warnings.log and organize_warnings.log:
//
//	w := model.Warning{Kind: model.WarnOrganizeSkipped, Path: rel, Err: err}
//	fmt.Println(w) // "organize skipped: <rel>: <err>"
package model
