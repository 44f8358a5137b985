package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/mattn/go-isatty"

	"tunetidy/internal/catalog"
	"tunetidy/internal/config"
	"tunetidy/internal/metrics"
)

func main() {
	// Command line flags
	var (
		outputFlag       = flag.String("output-dir", "", "Directory for generated CSV/SQLite outputs (overrides config)")
		exportFlag       = flag.String("export", "", "Export format: csv, sqlite or both (overrides config)")
		organizeFlag     = flag.Bool("organize", false, "Organize files into Artist/Album structure")
		sidecarsOnlyFlag = flag.Bool("organize-sidecars-only", false, "Only move/copy sidecar files into existing organized folders")
		destRootFlag     = flag.String("dest-root", "", "Destination root for organized library (defaults to the scan root)")
		applyFlag        = flag.Bool("apply", false, "Apply file operations; without this flag organize runs in dry-run mode")
		copyFlag         = flag.Bool("copy", false, "Copy files instead of moving when organizing")
		verboseFlag      = flag.Bool("verbose", false, "Print per-file scan and organize details")
		enrichFlag       = flag.Bool("enrich", false, "Query MusicBrainz to improve missing metadata before export/organize")
		enrichAllFlag    = flag.Bool("enrich-all", false, "Attempt enrichment for all tracks, not just missing artist/album")
		minScoreFlag     = flag.Int("mb-min-score", 0, "Minimum MusicBrainz match score (0-100) required to apply updates")
		contactFlag      = flag.String("mb-contact", "", "Contact URL/email for the MusicBrainz user agent")
		sleepFlag        = flag.Float64("mb-sleep", 0, "Delay in seconds between MusicBrainz requests")
		writeTagsFlag    = flag.Bool("write-tags", false, "When enriching, write updated metadata back into the source files")
		configFlag       = flag.String("config", "", "Path to config file")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("tunetidy - Catalog and organize local music libraries")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  tunetidy [options] <root>")
		fmt.Println()
		fmt.Println("For interactive mode, use: tunetidy-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	root, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fatalf("Invalid root path: %v", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		fatalf("Root directory does not exist or is not a directory: %s", root)
	}

	// Load config, then let flags override it.
	settings := config.DefaultSettings()
	if *configFlag != "" {
		settings, err = config.Load(*configFlag)
		if err != nil {
			fatalf("Error loading config: %v", err)
		}
	}
	applyFlags(settings, outputFlag, exportFlag, organizeFlag, destRootFlag,
		applyFlag, copyFlag, verboseFlag, enrichFlag, enrichAllFlag,
		minScoreFlag, contactFlag, sleepFlag, writeTagsFlag)

	if err := settings.Validate(); err != nil {
		fatalf("Invalid configuration: %v", err)
	}
	if *sidecarsOnlyFlag && settings.Enrich {
		fatalf("-organize-sidecars-only cannot be used with -enrich")
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	manager := catalog.NewManager(settings, func(event catalog.ProgressEvent) {
		if event.Level == catalog.LevelVerbose && !settings.Verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case catalog.LevelError:
			prefix = "[error] "
		case catalog.LevelWarning:
			prefix = "[warn] "
		case catalog.LevelSuccess:
			prefix = "[write] "
		case catalog.LevelInfo:
			prefix = "[info] "
		default:
			prefix = "       "
		}

		fmt.Println(prefix + event.Message)
	})
	if !settings.Verbose {
		manager.SetStageProgress(newProgressPrinter())
	}

	if *sidecarsOnlyFlag {
		if err := manager.RunSidecarsOnly(ctx, root); err != nil {
			fatalf("Sidecar sweep failed: %v", err)
		}
		return
	}

	if err := manager.Run(ctx, root); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nRun cancelled.")
			os.Exit(130)
		}
		fatalf("Run failed: %v", err)
	}

	printSummary(manager)
}

// newProgressPrinter returns a per-stage progress callback. On a TTY
// it rewrites a single line in place; otherwise it prints stepped
// lines at 10% intervals so piped output stays readable.
func newProgressPrinter() func(stage catalog.Stage, done, total int) {
	tty := isatty.IsTerminal(os.Stdout.Fd())
	lastStage := catalog.StageIdle
	lastPercent := -1

	return func(stage catalog.Stage, done, total int) {
		percent := 100
		if total > 0 {
			percent = done * 100 / total
		}
		if stage != lastStage {
			lastStage = stage
			lastPercent = -1
		}

		if tty {
			if percent == lastPercent && done < total {
				return
			}
			end := ""
			if done >= total {
				end = "\n"
			}
			fmt.Printf("\r[%s] %3d%% (%d/%d)%s", stage, percent, done, total, end)
			lastPercent = percent
			return
		}

		if lastPercent < 0 || done >= total || percent >= lastPercent+10 {
			fmt.Printf("[%s] %3d%% (%d/%d)\n", stage, percent, done, total)
			lastPercent = percent
		}
	}
}

// applyFlags copies every flag the user actually set onto settings.
func applyFlags(settings *config.Settings,
	outputFlag, exportFlag *string, organizeFlag *bool, destRootFlag *string,
	applyFlag, copyFlag, verboseFlag, enrichFlag, enrichAllFlag *bool,
	minScoreFlag *int, contactFlag *string, sleepFlag *float64, writeTagsFlag *bool,
) {
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *exportFlag != "" {
		settings.ExportFormat = *exportFlag
	}
	if *organizeFlag {
		settings.Organize = true
	}
	if *destRootFlag != "" {
		settings.DestRoot = *destRootFlag
	}
	if *applyFlag {
		settings.Apply = true
	}
	if *copyFlag {
		settings.CopyInsteadOfMove = true
	}
	if *verboseFlag {
		settings.Verbose = true
	}
	if *enrichFlag {
		settings.Enrich = true
	}
	if *enrichAllFlag {
		settings.EnrichAll = true
	}
	if *minScoreFlag > 0 {
		settings.MusicBrainzMinScore = *minScoreFlag
	}
	if *contactFlag != "" {
		settings.MusicBrainzContact = *contactFlag
	}
	if *sleepFlag > 0 {
		settings.MusicBrainzSleepSeconds = *sleepFlag
	}
	if *writeTagsFlag {
		settings.WriteTags = true
	}
}

// printSummary renders the library metrics and the per-format size
// distribution as tables.
func printSummary(manager *catalog.Manager) {
	summary, stats := manager.Summary()

	fmt.Println()
	fmt.Println(renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Tracks", strconv.Itoa(summary.TotalTracks)},
			{"Total size", metrics.HumanSize(summary.TotalSizeBytes)},
			{"Unique artists", strconv.Itoa(summary.UniqueArtists)},
			{"Unique albums", strconv.Itoa(summary.UniqueAlbums)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if len(stats) == 0 {
		return
	}

	rows := make([][]string, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, []string{
			stat.Ext,
			metrics.HumanSize(stat.SizeBytes),
			strconv.FormatFloat(stat.Percent, 'f', 2, 64) + "%",
		})
	}
	fmt.Println(renderTable(
		[]string{"Format", "Size", "Share"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
