package tags

import (
	"fmt"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLAC writes the non-blank fields as Vorbis comments.
func writeFLAC(path string, t Tags) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse flac: %w", err)
	}

	// Find the existing vorbis comment block, if any.
	var cmts *flacvorbis.MetaDataBlockVorbisComment
	cmtIdx := -1
	for idx, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			cmts, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return fmt.Errorf("parse vorbis comment: %w", err)
			}
			cmtIdx = idx
			break
		}
	}
	if cmts == nil {
		cmts = flacvorbis.New()
	}

	setComment(cmts, flacvorbis.FIELD_ARTIST, t.Artist)
	setComment(cmts, flacvorbis.FIELD_ALBUM, t.Album)
	setComment(cmts, flacvorbis.FIELD_TITLE, t.Title)
	setComment(cmts, flacvorbis.FIELD_TRACKNUMBER, t.TrackNumber)
	setComment(cmts, flacvorbis.FIELD_DATE, t.Year)
	setComment(cmts, flacvorbis.FIELD_GENRE, t.Genre)

	cmtsMeta := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &cmtsMeta
	} else {
		f.Meta = append(f.Meta, &cmtsMeta)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save flac: %w", err)
	}
	return nil
}

// setComment replaces every existing value of field with value. Blank
// values leave the field untouched.
func setComment(cmts *flacvorbis.MetaDataBlockVorbisComment, field, value string) {
	if value == "" {
		return
	}
	prefix := strings.ToUpper(field) + "="
	kept := cmts.Comments[:0]
	for _, c := range cmts.Comments {
		if !strings.HasPrefix(strings.ToUpper(c), prefix) {
			kept = append(kept, c)
		}
	}
	cmts.Comments = kept
	cmts.Add(field, value)
}
