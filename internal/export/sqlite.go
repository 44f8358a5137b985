package export

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	ioutils "tunetidy/internal/io"
	"tunetidy/internal/metrics"
	"tunetidy/internal/model"
)

const sqliteSchema = `
DROP TABLE IF EXISTS tracks;
DROP TABLE IF EXISTS library_metrics;
DROP TABLE IF EXISTS format_metrics;

CREATE TABLE tracks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path TEXT NOT NULL,
	relative_path TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	format_ext TEXT NOT NULL,
	artist TEXT NOT NULL,
	album TEXT NOT NULL,
	title TEXT NOT NULL,
	track_number TEXT,
	year TEXT,
	genre TEXT,
	metadata_source TEXT NOT NULL
);

CREATE TABLE library_metrics (
	total_tracks INTEGER NOT NULL,
	total_size_bytes INTEGER NOT NULL,
	unique_artists INTEGER NOT NULL,
	unique_albums INTEGER NOT NULL
);

CREATE TABLE format_metrics (
	format_ext TEXT PRIMARY KEY,
	size_bytes INTEGER NOT NULL,
	percent_of_library REAL NOT NULL
);
`

// WriteSQLite writes the catalog to a SQLite database at path, creating
// parent directories as needed. Existing tables are replaced, so
// repeated exports to the same file stay consistent with the latest
// scan. All writes happen in one transaction.
func WriteSQLite(path string, records []model.TrackRecord, summary model.LibraryMetrics, stats []metrics.FormatStat) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	insertTrack, err := tx.Prepare(`
		INSERT INTO tracks (
			file_path, relative_path, size_bytes, format_ext, artist, album, title,
			track_number, year, genre, metadata_source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insertTrack.Close()

	for _, rec := range records {
		_, err := insertTrack.Exec(
			rec.FilePath, rec.RelativePath, rec.SizeBytes, rec.FormatExt,
			rec.Artist, rec.Album, rec.Title,
			rec.TrackNumber, rec.Year, rec.Genre, rec.MetadataSource,
		)
		if err != nil {
			return fmt.Errorf("insert track %s: %w", rec.RelativePath, err)
		}
	}

	_, err = tx.Exec(
		"INSERT INTO library_metrics VALUES (?, ?, ?, ?)",
		summary.TotalTracks, summary.TotalSizeBytes, summary.UniqueArtists, summary.UniqueAlbums,
	)
	if err != nil {
		return fmt.Errorf("insert library metrics: %w", err)
	}

	for _, stat := range stats {
		_, err := tx.Exec(
			"INSERT INTO format_metrics VALUES (?, ?, ?)",
			stat.Ext, stat.SizeBytes, stat.Percent,
		)
		if err != nil {
			return fmt.Errorf("insert format metrics for %s: %w", stat.Ext, err)
		}
	}

	return tx.Commit()
}
