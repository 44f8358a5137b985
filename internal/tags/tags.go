package tags

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"tunetidy/internal/model"
)

// ErrUnsupportedFormat is returned by Write for audio formats that have
// no tag writer. Callers can detect it with errors.Is.
var ErrUnsupportedFormat = errors.New("unsupported audio format for tag writing")

// Tags holds the writable metadata fields. All values are strings;
// blank fields are left untouched in the file.
type Tags struct {
	Artist      string
	Album       string
	Title       string
	TrackNumber string
	Year        string
	Genre       string
}

// FromRecord extracts the writable fields of a track record.
func FromRecord(rec model.TrackRecord) Tags {
	return Tags{
		Artist:      rec.Artist,
		Album:       rec.Album,
		Title:       rec.Title,
		TrackNumber: rec.TrackNumber,
		Year:        rec.Year,
		Genre:       rec.Genre,
	}
}

// Write persists the given tags into the audio file at path. The format
// is picked by file extension: MP3 files get ID3v2 frames, FLAC files
// get Vorbis comments. Blank fields keep whatever the file already has.
//
// Returns ErrUnsupportedFormat (wrapped) for any other extension.
func Write(path string, t Tags) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return writeMP3(path, t)
	case ".flac":
		return writeFLAC(path, t)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// WriteRecord persists a record's metadata into its own file.
//
// Example:
//
//	if err := tags.WriteRecord(rec); err != nil {
//	    log.Printf("tag write failed for %s: %v", rec.RelativePath, err)
//	}
func WriteRecord(rec model.TrackRecord) error {
	return Write(rec.FilePath, FromRecord(rec))
}
