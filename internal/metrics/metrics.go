package metrics

import (
	"fmt"
	"math"
	"sort"

	"tunetidy/internal/model"
)

// FormatStat describes how much of the library one audio format
// occupies.
type FormatStat struct {
	// Ext is the lowercase file extension without the dot ("mp3").
	Ext string

	// SizeBytes is the combined size of every track in this format.
	SizeBytes int64

	// Percent is this format's share of the total library size,
	// rounded to two decimals. Zero when the library is empty.
	Percent float64
}

// Summarize computes library-wide metrics and the per-format size
// distribution from the scanned records. Format stats are sorted by
// extension. Albums with the same name under different artists count
// separately.
func Summarize(records []model.TrackRecord) (model.LibraryMetrics, []FormatStat) {
	var totalSize int64
	artists := make(map[string]struct{})
	albums := make(map[[2]string]struct{})
	formatBytes := make(map[string]int64)

	for _, rec := range records {
		totalSize += rec.SizeBytes
		artists[rec.Artist] = struct{}{}
		albums[[2]string{rec.Artist, rec.Album}] = struct{}{}
		formatBytes[rec.FormatExt] += rec.SizeBytes
	}

	summary := model.LibraryMetrics{
		TotalTracks:    len(records),
		TotalSizeBytes: totalSize,
		UniqueArtists:  len(artists),
		UniqueAlbums:   len(albums),
	}

	exts := make([]string, 0, len(formatBytes))
	for ext := range formatBytes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	stats := make([]FormatStat, 0, len(exts))
	for _, ext := range exts {
		size := formatBytes[ext]
		var pct float64
		if totalSize > 0 {
			pct = math.Round(float64(size)/float64(totalSize)*100*100) / 100
		}
		stats = append(stats, FormatStat{Ext: ext, SizeBytes: size, Percent: pct})
	}

	return summary, stats
}

// BytesToMB converts a byte count to mebibytes.
func BytesToMB(n int64) float64 {
	return float64(n) / (1024 * 1024)
}

// HumanSize renders a byte count as "12.34 MB".
func HumanSize(n int64) string {
	return fmt.Sprintf("%.2f MB", BytesToMB(n))
}
