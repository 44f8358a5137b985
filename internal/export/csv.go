package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	ioutils "tunetidy/internal/io"
	"tunetidy/internal/metrics"
	"tunetidy/internal/model"
)

// trackColumns is the header row of the tracks CSV.
var trackColumns = []string{
	"file_path",
	"relative_path",
	"size_mb",
	"format_ext",
	"artist",
	"album",
	"title",
	"track_number",
	"year",
	"genre",
	"metadata_source",
}

// WriteTracksCSV writes one row per track record to path, creating
// parent directories as needed. Sizes are reported in megabytes with
// two decimals.
func WriteTracksCSV(path string, records []model.TrackRecord) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(trackColumns); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.FilePath,
			rec.RelativePath,
			formatMB(rec.SizeBytes),
			rec.FormatExt,
			rec.Artist,
			rec.Album,
			rec.Title,
			rec.TrackNumber,
			rec.Year,
			rec.Genre,
			rec.MetadataSource,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteMetricsCSV writes the library summary followed by the per-format
// size distribution. The two sections are separated by a blank line.
func WriteMetricsCSV(path string, summary model.LibraryMetrics, stats []metrics.FormatStat) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{"metric", "value"},
		{"total_tracks", strconv.Itoa(summary.TotalTracks)},
		{"total_size_mb", formatMB(summary.TotalSizeBytes)},
		{"unique_artists", strconv.Itoa(summary.UniqueArtists)},
		{"unique_albums", strconv.Itoa(summary.UniqueAlbums)},
		{""},
		{"format", "size_mb", "percent_of_library"},
	}
	for _, stat := range stats {
		rows = append(rows, []string{
			stat.Ext,
			formatMB(stat.SizeBytes),
			strconv.FormatFloat(stat.Percent, 'f', -1, 64),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}

// createFile creates path after making sure its directory exists.
func createFile(path string) (*os.File, error) {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return os.Create(path)
}

// formatMB renders a byte count as megabytes with two decimals.
func formatMB(n int64) string {
	return strconv.FormatFloat(metrics.BytesToMB(n), 'f', 2, 64)
}
