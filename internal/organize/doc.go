// Package organize relocates a scanned music collection into a
// canonical Artist/Album directory layout and brings non-audio
// sidecar files (artwork, playlists, liner notes) along with their
// albums.
//
// # Relocation
//
// Organize processes track records in input order, computing each
// record's canonical target, creating parent directories, resolving
// name collisions with numbered suffixes, and moving or copying the
// file:
//
//	org := organize.New(organize.Options{
//	    DestinationRoot: "/library",
//	    DryRun:          false,
//	})
//	result := org.Organize(records, "/music/incoming")
//
// No destination file is ever overwritten and no source file is ever
// deleted (a move is a rename, or a verified copy-then-remove across
// volumes). A record already at its canonical target is counted as
// skipped, which makes re-runs idempotent.
//
// # Sidecars
//
// After the primary pass, the scan root is walked for sidecar
// candidates, grouped by source directory. Each directory is
// associated with the destination directory that received the
// plurality of its relocated audio files, or, failing that, with an
// existing destination matching its "<artist> - <album>" name.
// Unmappable directories are warned about and skipped. Sidecars never
// create a brand-new album directory.
//
// OrganizeSidecars runs the sidecar pass alone against a caller-given
// root, for topping up an already-organized library.
//
// # Failure handling
//
// Every per-file and per-directory I/O failure is recorded as a
// model.Warning and processing continues; no error is fatal to a
// pass. Dry-run mode performs no filesystem writes but reports the
// same counts and planned paths an apply run would.
package organize
