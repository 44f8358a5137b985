// Package ioutils provides the file system primitives the organizer
// is built on.
//
// This package contains functions for:
//   - Directory creation with full parent creation
//   - File copying that preserves permissions and timestamps
//   - File moves with a cross-volume copy-then-remove fallback
//
// # File Operations
//
//	// Ensure the album directory exists
//	err := ioutils.EnsureDir("/library/Artist/Album")
//
//	// Move a track into it (works across volumes)
//	err = ioutils.MoveFile("/incoming/track.mp3", "/library/Artist/Album/track.mp3")
//
//	// Or duplicate it, keeping the original's mtime
//	err = ioutils.CopyFile("/incoming/track.mp3", "/library/Artist/Album/track.mp3")
//
// No function in this package ever deletes a file except MoveFile's
// removal of the source after a fully successful cross-volume copy.
package ioutils
