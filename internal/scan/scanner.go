package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/dhowden/tag"
	"golang.org/x/sync/errgroup"

	"tunetidy/internal/model"
)

// audioExtensions lists every format the scanner catalogs.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".opus": true,
	".wma":  true,
	".aiff": true,
	".alac": true,
}

// appleDoublePrefix marks macOS metadata companions ("._name"); they
// are resource-fork blobs masquerading as audio files.
const appleDoublePrefix = "._"

// defaultConcurrency bounds parallel tag reads. Tag extraction is
// I/O-bound, so a small pool is enough to keep a disk busy.
const defaultConcurrency = 4

// ProgressFunc receives (completed, total) as candidates are read.
type ProgressFunc func(completed, total int)

// Options configures a scan pass.
type Options struct {
	// Concurrency bounds parallel tag extraction. Zero or negative
	// selects a small default. Record order always matches discovery
	// order regardless of this setting.
	Concurrency int

	// OnProgress, when set, is invoked as candidate files complete.
	OnProgress ProgressFunc

	// OnFile, when set, is invoked with each candidate's relative
	// path before its tags are read (verbose diagnostics).
	OnFile func(rel string)
}

// Scan walks root, reads tags from every audio file found, and
// returns normalized track records in discovery order.
//
// Directory-level traversal failures and per-file stat failures are
// recorded as warnings and never abort the scan. A file whose tags
// cannot be parsed still yields a record: its title falls back to the
// file name and its MetadataSource is "none".
//
// Example:
//
//	result, err := scan.Scan(ctx, "/music/incoming", scan.Options{
//	    OnProgress: func(done, total int) { fmt.Printf("%d/%d\n", done, total) },
//	})
func Scan(ctx context.Context, root string, opts Options) (model.ScanResult, error) {
	var result model.ScanResult

	info, err := os.Stat(root)
	if err != nil {
		return result, err
	}
	if !info.IsDir() {
		return result, &os.PathError{Op: "scan", Path: root, Err: os.ErrInvalid}
	}

	candidates := collectCandidates(filepath.Clean(root), &result.Warnings)

	total := len(candidates)
	var mu sync.Mutex
	done := 0
	progress := func() {
		if opts.OnProgress != nil {
			opts.OnProgress(done, total)
		}
	}
	progress()

	records := make([]*model.TrackRecord, total)

	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)

	for i, path := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if opts.OnFile != nil {
				opts.OnFile(rel)
			}

			rec, err := readTrack(path, rel)

			mu.Lock()
			if err != nil {
				result.Warnings = append(result.Warnings, model.Warning{
					Kind: model.WarnScanFileSkipped, Path: rel, Err: err,
				})
			} else {
				records[i] = &rec
			}
			done++
			progress()
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Records = make([]model.TrackRecord, 0, total)
	for _, rec := range records {
		if rec != nil {
			result.Records = append(result.Records, *rec)
		}
	}
	return result, nil
}

// collectCandidates walks root and returns every audio file path in
// lexical walk order, recording traversal failures as warnings.
func collectCandidates(root string, warnings *[]model.Warning) []string {
	var candidates []string

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			*warnings = append(*warnings, model.Warning{Kind: model.WarnScanWalk, Path: path, Err: err})
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if strings.HasPrefix(name, appleDoublePrefix) {
			return nil
		}
		if !audioExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil || !info.Mode().IsRegular() {
				return nil
			}
		} else if !entry.Type().IsRegular() {
			return nil
		}

		candidates = append(candidates, path)
		return nil
	})

	return candidates
}

// readTrack stats path and extracts its tags. A stat failure is
// returned as an error (the caller records a warning and drops the
// file); a tag-parse failure is not, and the record falls back to
// filename-derived metadata.
func readTrack(path, rel string) (model.TrackRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.TrackRecord{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	rec := model.TrackRecord{
		FilePath:       path,
		RelativePath:   rel,
		SizeBytes:      info.Size(),
		FormatExt:      strings.TrimPrefix(ext, "."),
		MetadataSource: model.SourceNone,
	}

	if meta := readTags(path); meta != nil {
		rec.Artist = strings.TrimSpace(meta.Artist())
		rec.Album = strings.TrimSpace(meta.Album())
		rec.Title = strings.TrimSpace(meta.Title())
		rec.Genre = strings.TrimSpace(meta.Genre())
		if n, _ := meta.Track(); n > 0 {
			rec.TrackNumber = strconv.Itoa(n)
		}
		if y := meta.Year(); y > 0 {
			rec.Year = strconv.Itoa(y)
		}
		rec.MetadataSource = model.SourceTags
	}

	rec.Artist = NormalizeArtist(rec.Artist)
	rec.Album = NormalizeAlbum(rec.Album)
	rec.Title = NormalizeTitle(rec.Title, stem)
	return rec, nil
}

// readTags opens path and parses its tags, returning nil when the
// file carries none (or they are unreadable).
func readTags(path string) tag.Metadata {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil
	}
	return meta
}

// NormalizeArtist substitutes the catalog-wide fallback for a blank
// artist.
func NormalizeArtist(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.UnknownArtist
	}
	return value
}

// NormalizeAlbum substitutes the catalog-wide fallback for a blank
// album.
func NormalizeAlbum(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.UnknownAlbum
	}
	return value
}

// NormalizeTitle substitutes fallback (typically the file stem) for a
// blank title.
func NormalizeTitle(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
