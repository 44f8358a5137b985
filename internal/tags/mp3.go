package tags

import (
	"fmt"

	"github.com/bogem/id3v2"
)

// writeMP3 writes the non-blank fields as ID3v2 text frames.
func writeMP3(path string, t Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open mp3: %w", err)
	}
	defer tag.Close()

	if t.Artist != "" {
		tag.SetArtist(t.Artist)
	}
	if t.Album != "" {
		tag.SetAlbum(t.Album)
	}
	if t.Title != "" {
		tag.SetTitle(t.Title)
	}
	if t.Genre != "" {
		tag.SetGenre(t.Genre)
	}
	if t.TrackNumber != "" {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, t.TrackNumber)
	}
	if t.Year != "" {
		// TYER for ID3v2.3 readers, TDRC for v2.4.
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, t.Year)
		tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, t.Year)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save mp3 tags: %w", err)
	}
	return nil
}
