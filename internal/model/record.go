package model

// MetadataSource values recorded on a TrackRecord.
const (
	// SourceTags means the metadata was read from the file's own tags.
	SourceTags = "tags"

	// SourceNone means the file carried no readable tags and the
	// metadata was derived from the file name.
	SourceNone = "none"

	// SourceMusicBrainz means the metadata was replaced by a
	// MusicBrainz enrichment pass.
	SourceMusicBrainz = "musicbrainz"
)

// Normalization fallbacks applied by the scanner. The organizer and
// enricher both key off these exact values, so they live here.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Miscellaneous"
)

// TrackRecord describes one audio file: where it lives on disk and
// what its descriptive metadata says.
//
// Records are created by the scanner, optionally replaced (never
// mutated) by the enricher, and consumed read-only by the organizer
// and exporters. FilePath and RelativePath identify the file; the
// organizer relocates the file on disk but never rewrites the record.
//
// Example:
//
//	rec := model.TrackRecord{
//	    FilePath:     "/music/incoming/Pink Floyd - The Wall/t1.flac",
//	    RelativePath: "Pink Floyd - The Wall/t1.flac",
//	    SizeBytes:    31457280,
//	    FormatExt:    "flac",
//	    Artist:       "Pink Floyd",
//	    Album:        "The Wall",
//	    Title:        "In the Flesh?",
//	}
type TrackRecord struct {
	// FilePath is the current absolute location on disk.
	FilePath string

	// RelativePath is the path relative to the scan root, used in
	// diagnostics and exports.
	RelativePath string

	// SizeBytes is the file size at scan time.
	SizeBytes int64

	// FormatExt is the lower-case extension without the dot ("mp3").
	FormatExt string

	Artist      string
	Album       string
	Title       string
	TrackNumber string
	Year        string
	Genre       string

	// MetadataSource records where Artist/Album/Title came from.
	// One of SourceTags, SourceNone, SourceMusicBrainz.
	MetadataSource string
}

// ScanResult is the outcome of one scan pass.
type ScanResult struct {
	Records  []TrackRecord
	Warnings []Warning
}

// LibraryMetrics summarizes a scanned collection.
type LibraryMetrics struct {
	TotalTracks    int
	TotalSizeBytes int64
	UniqueArtists  int
	UniqueAlbums   int
}

// OrganizeResult is the aggregate outcome of one relocation pass.
//
// Moved counts both real operations and dry-run plans; dry-run and
// apply share counting semantics so a dry-run report is a reliable
// preview of the apply outcome.
type OrganizeResult struct {
	// Moved is the number of audio files moved or copied (or planned,
	// in dry-run mode).
	Moved int

	// Skipped is the number of records already at their canonical
	// target path.
	Skipped int

	// SidecarMoved is the number of sidecar files relocated.
	SidecarMoved int

	// Warnings holds one entry per failed file or directory, in the
	// order the failures were encountered. Warnings are never fatal.
	Warnings []Warning
}
