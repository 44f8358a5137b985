package tags

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"

	"tunetidy/internal/model"
)

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "track.wav"), Tags{Artist: "A"})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFromRecord(t *testing.T) {
	rec := model.TrackRecord{
		Artist:      "Pink Floyd",
		Album:       "The Wall",
		Title:       "Hey You",
		TrackNumber: "1",
		Year:        "1979",
		Genre:       "Rock",
	}
	got := FromRecord(rec)
	want := Tags{Artist: "Pink Floyd", Album: "The Wall", Title: "Hey You", TrackNumber: "1", Year: "1979", Genre: "Rock"}
	if got != want {
		t.Errorf("FromRecord() = %+v, want %+v", got, want)
	}
}

func TestWriteMP3_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, []byte("fake mpeg frames"), 0644); err != nil {
		t.Fatal(err)
	}

	in := Tags{
		Artist:      "Pink Floyd",
		Album:       "The Dark Side of the Moon",
		Title:       "Time",
		TrackNumber: "4",
		Year:        "1973",
		Genre:       "Progressive Rock",
	}
	if err := Write(path, in); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if got := tag.Artist(); got != in.Artist {
		t.Errorf("artist = %q", got)
	}
	if got := tag.Album(); got != in.Album {
		t.Errorf("album = %q", got)
	}
	if got := tag.Title(); got != in.Title {
		t.Errorf("title = %q", got)
	}
	if got := tag.GetTextFrame("TRCK").Text; got != "4" {
		t.Errorf("track = %q", got)
	}
	if got := tag.GetTextFrame("TYER").Text; got != "1973" {
		t.Errorf("year = %q", got)
	}
}

func TestWriteMP3_BlankFieldsPreserveExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.mp3")
	if err := os.WriteFile(path, []byte("fake mpeg frames"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Write(path, Tags{Artist: "Original", Title: "Keep Me"}); err != nil {
		t.Fatal(err)
	}
	// Second write with a blank title must not clear it.
	if err := Write(path, Tags{Artist: "Replaced"}); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatal(err)
	}
	defer tag.Close()

	if got := tag.Artist(); got != "Replaced" {
		t.Errorf("artist = %q", got)
	}
	if got := tag.Title(); got != "Keep Me" {
		t.Errorf("title = %q", got)
	}
}

// minimalFLAC writes a bare FLAC container with an empty stream info
// block and no audio frames, enough for metadata round trips.
func minimalFLAC(t *testing.T, dir string) string {
	t.Helper()
	data := append([]byte("fLaC"), 0x80, 0, 0, 34)
	data = append(data, make([]byte, 34)...)
	// Frame sync code: go-flac requires at least one frame header to
	// follow the metadata blocks.
	data = append(data, 0xFF, 0xF8)
	path := filepath.Join(dir, "track.flac")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWriteFLAC_RoundTrip(t *testing.T) {
	path := minimalFLAC(t, t.TempDir())

	in := Tags{Artist: "Pink Floyd", Album: "The Wall", Title: "Hey You", Year: "1979"}
	if err := Write(path, in); err != nil {
		t.Fatal(err)
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var cmts *flacvorbis.MetaDataBlockVorbisComment
	for _, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				t.Fatal(err)
			}
		}
	}
	if cmts == nil {
		t.Fatal("no vorbis comment block written")
	}

	checks := map[string]string{
		flacvorbis.FIELD_ARTIST: "Pink Floyd",
		flacvorbis.FIELD_ALBUM:  "The Wall",
		flacvorbis.FIELD_TITLE:  "Hey You",
		flacvorbis.FIELD_DATE:   "1979",
	}
	for field, want := range checks {
		values, err := cmts.Get(field)
		if err != nil {
			t.Fatal(err)
		}
		if len(values) != 1 || values[0] != want {
			t.Errorf("%s = %v, want %q", field, values, want)
		}
	}
}

func TestWriteFLAC_ReplacesExistingValues(t *testing.T) {
	path := minimalFLAC(t, t.TempDir())

	if err := Write(path, Tags{Album: "First"}); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, Tags{Album: "Second"}); err != nil {
		t.Fatal(err)
	}

	f, err := flac.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			t.Fatal(err)
		}
		values, err := cmts.Get(flacvorbis.FIELD_ALBUM)
		if err != nil {
			t.Fatal(err)
		}
		if len(values) != 1 || values[0] != "Second" {
			t.Errorf("album = %v, want single %q", values, "Second")
		}
	}
}
