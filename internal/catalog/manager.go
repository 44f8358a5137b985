package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"tunetidy/internal/config"
	"tunetidy/internal/export"
	ioutils "tunetidy/internal/io"
	"tunetidy/internal/metrics"
	"tunetidy/internal/model"
	"tunetidy/internal/musicbrainz"
	"tunetidy/internal/organize"
	"tunetidy/internal/scan"
	"tunetidy/internal/tags"
)

// Application identity reported to external services.
const (
	AppName    = "tunetidy"
	AppVersion = "0.3.0"
)

// Names of the files written into the output directory.
const (
	TracksCSVName       = "tracks_catalog.csv"
	MetricsCSVName      = "library_metrics.csv"
	SQLiteName          = "music_catalog.db"
	ScanWarningsLog     = "scan_warnings.log"
	OrganizeWarningsLog = "organize_warnings.log"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Stage identifies which part of the pipeline is running.
type Stage int32

const (
	StageIdle Stage = iota
	StageScanning
	StageEnriching
	StageExporting
	StageOrganizing
	StageDone
)

// String returns the stage name used in progress output.
func (s Stage) String() string {
	switch s {
	case StageScanning:
		return "scan"
	case StageEnriching:
		return "enrich"
	case StageExporting:
		return "export"
	case StageOrganizing:
		return "organize"
	case StageDone:
		return "done"
	default:
		return "idle"
	}
}

// Manager coordinates the full cataloging pipeline: scanning the
// library, optionally enriching metadata from MusicBrainz, exporting
// the catalog, and organizing files on disk.
type Manager struct {
	settings *config.Settings

	stage      int32
	stageDone  int32
	stageTotal int32

	records       []model.TrackRecord
	summary       model.LibraryMetrics
	stats         []metrics.FormatStat
	enrichOutcome musicbrainz.Result
	organizeOut   model.OrganizeResult

	onProgress func(ProgressEvent)
	onStage    func(stage Stage, done, total int)
	mu         sync.RWMutex
}

// NewManager creates a pipeline Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		onProgress: onProgress,
	}
}

// Run executes the pipeline over the library rooted at root.
//
/// Stages run in order: scan, enrich (when enabled), export, organize
// (when enabled). Warnings from scanning and organizing are written as
// log files into the configured output directory. Run returns an error
// only when a stage cannot proceed at all; per-file problems surface as
// warnings instead.
func (m *Manager) Run(ctx context.Context, root string) error {
	m.setStage(StageScanning)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning: %s", root), Level: LevelInfo})

	result, err := scan.Scan(ctx, root, scan.Options{
		Concurrency: m.settings.ScanConcurrency,
		OnProgress:  m.stageProgress,
		OnFile: func(rel string) {
			if m.settings.Verbose {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Scanned: %s", rel), Level: LevelVerbose})
			}
		},
	})
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Scan failed: %v", err), Level: LevelError})
		return err
	}
	records := result.Records

	if m.settings.Enrich {
		m.setStage(StageEnriching)
		m.progress(ProgressEvent{Message: "Running MusicBrainz enrichment pass", Level: LevelInfo})

		outcome, enriched, err := m.enrich(ctx, records)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Enrichment aborted: %v", err), Level: LevelError})
			return err
		}
		records = enriched
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Enriched: %d checked, %d updated, %d unmatched", outcome.Checked, outcome.Updated, outcome.Unmatched),
			Level:   LevelInfo,
		})
		if m.settings.WriteTags {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Tags written: %d", outcome.TagsWritten), Level: LevelInfo})
		}

		m.mu.Lock()
		m.enrichOutcome = outcome
		m.mu.Unlock()
	}

	summary, stats := metrics.Summarize(records)
	m.mu.Lock()
	m.records = records
	m.summary = summary
	m.stats = stats
	m.mu.Unlock()

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d tracks (%s), %d artists, %d albums",
			summary.TotalTracks, metrics.HumanSize(summary.TotalSizeBytes), summary.UniqueArtists, summary.UniqueAlbums),
		Level: LevelInfo,
	})

	m.writeWarningLog(ScanWarningsLog, result.Warnings)

	m.setStage(StageExporting)
	if err := m.export(records, summary, stats); err != nil {
		return err
	}

	if m.settings.Organize {
		m.setStage(StageOrganizing)
		m.organize(records, root)
	}

	m.setStage(StageDone)
	return nil
}

// RunSidecarsOnly sweeps leftover sidecar files under root into the
// organized library without scanning or exporting anything.
func (m *Manager) RunSidecarsOnly(ctx context.Context, root string) error {
	_ = ctx

	m.setStage(StageOrganizing)
	destRoot := m.settings.DestRoot
	if destRoot == "" {
		destRoot = root
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Sidecar sweep: %s -> %s", root, destRoot), Level: LevelInfo})
	if !m.settings.Apply {
		m.progress(ProgressEvent{Message: "Dry-run mode enabled (pass apply to execute)", Level: LevelInfo})
	}

	organizer := m.newOrganizer(destRoot)
	out := organizer.OrganizeSidecars(root)

	m.mu.Lock()
	m.organizeOut = out
	m.mu.Unlock()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Sidecar files moved/copied: %d", out.SidecarMoved), Level: LevelSuccess})
	m.writeWarningLog(OrganizeWarningsLog, out.Warnings)

	m.setStage(StageDone)
	return nil
}

// GetProgress returns the running stage and its (done, total) counts.
func (m *Manager) GetProgress() (stage Stage, done, total int32) {
	return Stage(atomic.LoadInt32(&m.stage)),
		atomic.LoadInt32(&m.stageDone),
		atomic.LoadInt32(&m.stageTotal)
}

// Records returns the catalog produced by the last Run.
func (m *Manager) Records() []model.TrackRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records
}

// Summary returns the library metrics produced by the last Run.
func (m *Manager) Summary() (model.LibraryMetrics, []metrics.FormatStat) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary, m.stats
}

// EnrichOutcome returns the MusicBrainz results of the last Run.
func (m *Manager) EnrichOutcome() musicbrainz.Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enrichOutcome
}

// OrganizeOutcome returns the organize results of the last Run.
func (m *Manager) OrganizeOutcome() model.OrganizeResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.organizeOut
}

func (m *Manager) enrich(ctx context.Context, records []model.TrackRecord) (musicbrainz.Result, []model.TrackRecord, error) {
	client := musicbrainz.NewClient(AppName, AppVersion, m.settings.MusicBrainzContact, m.settings.MusicBrainzSleepSeconds)
	enricher := musicbrainz.NewEnricher(client, musicbrainz.Options{
		MissingOnly: !m.settings.EnrichAll,
		MinScore:    m.settings.MusicBrainzMinScore,
		OnProgress:  m.stageProgress,
		OnEvent: func(message string) {
			if m.settings.Verbose {
				m.progress(ProgressEvent{Message: message, Level: LevelVerbose})
			}
		},
		WriteTags: m.settings.WriteTags,
		TagWriter: tags.WriteRecord,
	})
	return enricher.Enrich(ctx, records)
}

func (m *Manager) export(records []model.TrackRecord, summary model.LibraryMetrics, stats []metrics.FormatStat) error {
	format := m.settings.ExportFormat

	if format == config.ExportCSV || format == config.ExportBoth {
		tracksPath := filepath.Join(m.settings.OutputDir, TracksCSVName)
		if err := export.WriteTracksCSV(tracksPath, records); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("CSV export failed: %v", err), Level: LevelError})
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote CSV catalog: %s", tracksPath), Level: LevelSuccess})

		metricsPath := filepath.Join(m.settings.OutputDir, MetricsCSVName)
		if err := export.WriteMetricsCSV(metricsPath, summary, stats); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("CSV metrics export failed: %v", err), Level: LevelError})
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote CSV metrics: %s", metricsPath), Level: LevelSuccess})
	}

	if format == config.ExportSQLite || format == config.ExportBoth {
		dbPath := filepath.Join(m.settings.OutputDir, SQLiteName)
		if err := export.WriteSQLite(dbPath, records, summary, stats); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("SQLite export failed: %v", err), Level: LevelError})
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Wrote SQLite catalog: %s", dbPath), Level: LevelSuccess})
	}

	return nil
}

func (m *Manager) organize(records []model.TrackRecord, root string) {
	destRoot := m.settings.DestRoot
	if destRoot == "" {
		destRoot = root
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Organize destination: %s", destRoot), Level: LevelInfo})
	if !m.settings.Apply {
		m.progress(ProgressEvent{Message: "Dry-run mode enabled (pass apply to execute)", Level: LevelInfo})
	}

	organizer := m.newOrganizer(destRoot)
	out := organizer.Organize(records, root)

	m.mu.Lock()
	m.organizeOut = out
	m.mu.Unlock()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Planned/performed file operations: %d", out.Moved), Level: LevelSuccess})
	m.progress(ProgressEvent{Message: fmt.Sprintf("Skipped (already in place): %d", out.Skipped), Level: LevelInfo})
	m.progress(ProgressEvent{Message: fmt.Sprintf("Sidecar files moved/copied: %d", out.SidecarMoved), Level: LevelInfo})
	m.writeWarningLog(OrganizeWarningsLog, out.Warnings)
}

func (m *Manager) newOrganizer(destRoot string) *organize.Organizer {
	return organize.New(organize.Options{
		DestinationRoot:   destRoot,
		DryRun:            !m.settings.Apply,
		CopyInsteadOfMove: m.settings.CopyInsteadOfMove,
		OnProgress:        m.stageProgress,
		OnPlan: func(action, src, dst string) {
			if m.settings.Verbose {
				m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s -> %s", action, src, dst), Level: LevelVerbose})
			}
		},
	})
}

// writeWarningLog persists warnings as one line per warning and tells
// the caller where to look. Nothing is written when there are none.
func (m *Manager) writeWarningLog(name string, warnings []model.Warning) {
	if len(warnings) == 0 {
		return
	}

	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	data := []byte(strings.Join(lines, "\n") + "\n")

	path, err := ioutils.WriteFileInDir(m.settings.OutputDir, name, data)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not write %s: %v", name, err), Level: LevelError})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("%d warnings, details written: %s", len(warnings), path), Level: LevelWarning})
}

// SetStageProgress registers fn to receive numeric per-stage progress
// as it happens. Unlike GetProgress, which callers poll, fn is invoked
// synchronously from the pipeline and must return quickly.
func (m *Manager) SetStageProgress(fn func(stage Stage, done, total int)) {
	m.onStage = fn
}

// stageProgress records (done, total) for the current stage.
func (m *Manager) stageProgress(done, total int) {
	atomic.StoreInt32(&m.stageDone, int32(done))
	atomic.StoreInt32(&m.stageTotal, int32(total))
	if m.onStage != nil {
		m.onStage(Stage(atomic.LoadInt32(&m.stage)), done, total)
	}
}

func (m *Manager) setStage(stage Stage) {
	atomic.StoreInt32(&m.stage, int32(stage))
	atomic.StoreInt32(&m.stageDone, 0)
	atomic.StoreInt32(&m.stageTotal, 0)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
