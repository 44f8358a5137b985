// Package tags writes track metadata back into audio files.
//
// MP3 files are written as ID3v2 text frames and FLAC files as Vorbis
// comments. Only non-blank fields are written; existing values for
// other fields are preserved. Formats without a writer report
// ErrUnsupportedFormat so callers can skip them quietly.
package tags
