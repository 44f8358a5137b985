// Package scan walks a music directory tree and produces normalized
// track records for the rest of the pipeline.
//
// The walk tolerates unreadable subtrees (they become warnings), skips
// macOS "._" metadata companions, and recognizes audio files by
// extension. Tags are extracted with github.com/dhowden/tag under a
// bounded worker pool; output order always matches discovery order.
//
//	result, err := scan.Scan(ctx, "/music/incoming", scan.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("found %d tracks, %d warnings\n", len(result.Records), len(result.Warnings))
//
// Normalization guarantees the organizer relies on: a record never
// leaves this package with a blank artist ("Unknown Artist"), album
// ("Miscellaneous"), or title (file name stem).
package scan
