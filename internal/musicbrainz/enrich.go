package musicbrainz

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"tunetidy/internal/model"
	"tunetidy/internal/scan"
)

// Options controls how records are enriched.
type Options struct {
	// MissingOnly limits enrichment to records whose artist or album is
	// still a fallback value. When false every record is looked up.
	MissingOnly bool

	// MinScore is the minimum MusicBrainz relevance score (0-100) a
	// candidate must reach before its metadata is applied.
	MinScore int

	// OnProgress is called after each lookup with (done, total) counts.
	// Pass nil to disable progress tracking.
	OnProgress func(done, total int)

	// OnEvent receives verbose diagnostic messages about individual
	// lookups. Pass nil to disable.
	OnEvent func(message string)

	// WriteTags applies enriched metadata back to the audio files via
	// the TagWriter.
	WriteTags bool

	// TagWriter persists a record's metadata into its file. Required
	// when WriteTags is set.
	TagWriter func(rec model.TrackRecord) error
}

// Result summarizes one enrichment pass.
type Result struct {
	// Checked is the number of records that were looked up.
	Checked int

	// Updated is the number of records whose metadata changed.
	Updated int

	// Unmatched is the number of records with no acceptable candidate.
	Unmatched int

	// TagsWritten is the number of files whose tags were rewritten.
	TagsWritten int
}

// searcher is the subset of Client the enricher needs.
type searcher interface {
	SearchRecordings(ctx context.Context, title, artist string) ([]Recording, error)
}

// Enricher fills in missing track metadata from MusicBrainz lookups.
type Enricher struct {
	client searcher
	opts   Options
}

// NewEnricher creates an Enricher that queries via client.
func NewEnricher(client *Client, opts Options) *Enricher {
	return &Enricher{client: client, opts: opts}
}

// Enrich looks up each eligible record and returns an updated copy of
// the input slice. The input records are never modified; callers that
// want the enriched metadata use the returned slice.
//
// Records are eligible when Options.MissingOnly is false, or when their
// artist or album is still a fallback value. A candidate is applied only
// when its relevance score reaches Options.MinScore.
func (e *Enricher) Enrich(ctx context.Context, records []model.TrackRecord) (Result, []model.TrackRecord, error) {
	out := make([]model.TrackRecord, len(records))
	copy(out, records)

	var candidates []int
	for i, rec := range out {
		if needsEnrichment(rec, e.opts.MissingOnly) {
			candidates = append(candidates, i)
		}
	}

	var res Result
	e.progress(0, len(candidates))

	for done, idx := range candidates {
		if err := ctx.Err(); err != nil {
			return res, out, err
		}

		rec := out[idx]
		res.Checked++

		queryArtist := rec.Artist
		if queryArtist == model.UnknownArtist {
			queryArtist = ""
		}
		stem := strings.TrimSuffix(filepath.Base(rec.FilePath), filepath.Ext(rec.FilePath))
		queryTitle := scan.NormalizeTitle(rec.Title, stem)
		if queryTitle == "" {
			res.Unmatched++
			e.progress(done+1, len(candidates))
			continue
		}

		recordings, err := e.client.SearchRecordings(ctx, queryTitle, queryArtist)
		if err != nil {
			e.event("query failed for %s: %v", rec.RelativePath, err)
			res.Unmatched++
			e.progress(done+1, len(candidates))
			continue
		}

		best, ok := bestCandidate(recordings)
		if !ok {
			res.Unmatched++
			e.progress(done+1, len(candidates))
			continue
		}
		if best.Score < e.opts.MinScore {
			e.event("low score %d for %s", best.Score, rec.RelativePath)
			res.Unmatched++
			e.progress(done+1, len(candidates))
			continue
		}

		updated := applyCandidate(rec, best, stem)
		if updated != rec {
			e.event("%s: artist=%q -> %q, album=%q -> %q",
				rec.RelativePath, rec.Artist, updated.Artist, rec.Album, updated.Album)
			out[idx] = updated
			res.Updated++

			if e.opts.WriteTags && e.opts.TagWriter != nil {
				if err := e.opts.TagWriter(updated); err != nil {
					e.event("tag write failed for %s: %v", updated.RelativePath, err)
				} else {
					res.TagsWritten++
				}
			}
		}

		e.progress(done+1, len(candidates))
	}

	return res, out, nil
}

// needsEnrichment reports whether a record is eligible for lookup.
func needsEnrichment(rec model.TrackRecord, missingOnly bool) bool {
	if !missingOnly {
		return true
	}
	artist := strings.TrimSpace(rec.Artist)
	album := strings.TrimSpace(rec.Album)
	missingArtist := artist == "" || strings.EqualFold(artist, model.UnknownArtist)
	missingAlbum := album == "" || strings.EqualFold(album, model.UnknownAlbum)
	return missingArtist || missingAlbum
}

// bestCandidate returns the highest scoring recording.
func bestCandidate(recordings []Recording) (Recording, bool) {
	if len(recordings) == 0 {
		return Recording{}, false
	}
	sorted := make([]Recording, len(recordings))
	copy(sorted, recordings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted[0], true
}

// applyCandidate merges the candidate's metadata into a copy of rec,
// keeping the existing value wherever the candidate has none.
func applyCandidate(rec model.TrackRecord, best Recording, stem string) model.TrackRecord {
	updated := rec

	if name := best.ArtistName(); name != "" {
		updated.Artist = scan.NormalizeArtist(name)
	}
	if title := best.ReleaseTitle(); title != "" {
		updated.Album = scan.NormalizeAlbum(title)
	}
	if title := strings.TrimSpace(best.Title); title != "" {
		updated.Title = scan.NormalizeTitle(title, stem)
	}
	if year := best.ReleaseYear(); year != "" {
		updated.Year = year
	}

	if updated != rec {
		updated.MetadataSource = model.SourceMusicBrainz
	}
	return updated
}

func (e *Enricher) progress(done, total int) {
	if e.opts.OnProgress != nil {
		e.opts.OnProgress(done, total)
	}
}

func (e *Enricher) event(format string, args ...any) {
	if e.opts.OnEvent != nil {
		e.opts.OnEvent(fmt.Sprintf(format, args...))
	}
}
