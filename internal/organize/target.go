package organize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tunetidy/internal/model"
)

// TargetPath computes the canonical destination for a track record:
//
//	destinationRoot/<sanitized artist>/<sanitized album>/<original file name>
//
// A blank artist resolves to "Unknown Artist" and a blank album to
// "Miscellaneous" (the scanner normally applies these fallbacks
// already; they are repeated here so the resolver is safe on raw
// records). The original file name is kept verbatim; only the artist
// and album segments are sanitized.
func TargetPath(rec model.TrackRecord, destinationRoot string) string {
	artist := rec.Artist
	if strings.TrimSpace(artist) == "" {
		artist = model.UnknownArtist
	}
	album := rec.Album
	if strings.TrimSpace(album) == "" {
		album = model.UnknownAlbum
	}
	return filepath.Join(destinationRoot, SanitizeName(artist), SanitizeName(album), filepath.Base(rec.FilePath))
}

// nonCollidingPath returns path unchanged when nothing occupies it,
// otherwise the first free numbered variant: "name (1).ext",
// "name (2).ext", and so on. The probe is unbounded; it must always
// find a free name rather than silently reusing an occupied one.
func nonCollidingPath(path string) string {
	if !pathExists(path) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
		if !pathExists(candidate) {
			return candidate
		}
	}
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// samePath reports whether a and b resolve to the same on-disk
// location. Any resolution failure (typically: one side doesn't
// exist) means "not the same"; the caller then proceeds with the
// relocation and surfaces real I/O errors there.
func samePath(a, b string) bool {
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		return false
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		return false
	}
	return ra == rb
}
