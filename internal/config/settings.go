package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Export format values accepted by Settings.ExportFormat.
const (
	ExportCSV    = "csv"
	ExportSQLite = "sqlite"
	ExportBoth   = "both"
)

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputDir    string `json:"output_dir"`
	ExportFormat string `json:"export_format"` // csv, sqlite, both

	// Organize settings
	Organize          bool   `json:"organize"`
	DestRoot          string `json:"dest_root"`
	Apply             bool   `json:"apply"`
	CopyInsteadOfMove bool   `json:"copy_instead_of_move"`

	// Enrichment settings
	Enrich                  bool    `json:"enrich"`
	EnrichAll               bool    `json:"enrich_all"`
	MusicBrainzMinScore     int     `json:"musicbrainz_min_score"`
	MusicBrainzContact      string  `json:"musicbrainz_contact"`
	MusicBrainzSleepSeconds float64 `json:"musicbrainz_sleep_seconds"`
	WriteTags               bool    `json:"write_tags"`

	// Scan settings
	ScanConcurrency int `json:"scan_concurrency"`

	// Diagnostics
	Verbose bool `json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:    "./output",
		ExportFormat: ExportBoth,

		Organize:          false,
		Apply:             false,
		CopyInsteadOfMove: false,

		Enrich:                  false,
		EnrichAll:               false,
		MusicBrainzMinScore:     85,
		MusicBrainzContact:      "https://example.com/contact",
		MusicBrainzSleepSeconds: 1.1,
		WriteTags:               false,

		ScanConcurrency: 4,
	}
}

// Load reads settings from a JSON file. A missing file is not an
// error; defaults are returned so a fresh install works without any
// configuration.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports configuration combinations that cannot run.
func (s *Settings) Validate() error {
	switch s.ExportFormat {
	case ExportCSV, ExportSQLite, ExportBoth:
	default:
		return fmt.Errorf("invalid export format %q (want csv, sqlite or both)", s.ExportFormat)
	}
	if s.MusicBrainzMinScore < 0 || s.MusicBrainzMinScore > 100 {
		return fmt.Errorf("musicbrainz_min_score must be between 0 and 100, got %d", s.MusicBrainzMinScore)
	}
	if s.MusicBrainzSleepSeconds < 0 {
		return fmt.Errorf("musicbrainz_sleep_seconds must not be negative, got %v", s.MusicBrainzSleepSeconds)
	}
	if s.ScanConcurrency < 0 {
		return fmt.Errorf("scan_concurrency must not be negative, got %d", s.ScanConcurrency)
	}
	return nil
}
