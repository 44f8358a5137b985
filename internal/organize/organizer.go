package organize

import (
	"path/filepath"
	"sort"

	ioutils "tunetidy/internal/io"
	"tunetidy/internal/model"
)

// Action labels passed to Options.OnPlan for each planned operation.
const (
	ActionMove        = "move"
	ActionCopy        = "copy"
	ActionMoveSidecar = "move-sidecar"
	ActionCopySidecar = "copy-sidecar"
)

// ProgressFunc receives (completed, total) after each unit of work.
// It is called for UI feedback only and must tolerate total == 0.
type ProgressFunc func(completed, total int)

// Options configures an Organizer.
type Options struct {
	// DestinationRoot is the absolute root the canonical
	// Artist/Album layout is built under.
	DestinationRoot string

	// DryRun computes and reports planned operations without touching
	// the filesystem. Counts are identical between dry-run and apply.
	DryRun bool

	// CopyInsteadOfMove duplicates files (preserving timestamps)
	// rather than moving them.
	CopyInsteadOfMove bool

	// OnProgress, when set, is invoked after each processed unit.
	OnProgress ProgressFunc

	// OnPlan, when set, is invoked once per planned or performed
	// operation with the action label, source, and final target.
	OnPlan func(action, src, dst string)

	// OnWarn, when set, is invoked as each warning is recorded, in
	// addition to the warning appearing in the result.
	OnWarn func(model.Warning)
}

// Organizer relocates audio files into the canonical
// DestinationRoot/Artist/Album layout and brings sidecar files along.
//
// Processing is strictly sequential and deterministic: records in
// input order, sidecars in directory-walk order. Every per-file I/O
// failure becomes a warning and the batch continues; no error aborts
// a pass. Re-running Organize over an already-organized tree is a
// no-op (files already at their canonical target are skipped), so an
// interrupted run can simply be retried.
//
// Example:
//
//	org := organize.New(organize.Options{
//	    DestinationRoot: "/library",
//	    DryRun:          true,
//	})
//	result := org.Organize(records, "/music/incoming")
//	fmt.Printf("planned %d moves, %d already in place\n", result.Moved, result.Skipped)
type Organizer struct {
	opts Options
}

// New creates an Organizer with the given options.
func New(opts Options) *Organizer {
	return &Organizer{opts: opts}
}

// Organize relocates every record into the canonical layout, then
// relocates sidecar files discovered under scanRoot.
//
// scanRoot is the root the records were scanned from. It steers the
// sidecar discovery walk; when it is empty the sidecar pass falls
// back to flat, non-recursive listings of the source directories that
// contributed relocated files.
//
// The records slice is read-only to Organize; no field is ever
// modified. Files are never overwritten (collisions get a numbered
// suffix) and never deleted.
func (o *Organizer) Organize(records []model.TrackRecord, scanRoot string) model.OrganizeResult {
	var result model.OrganizeResult
	warn := o.warnInto(&result.Warnings)

	votes := make(voteTally)
	total := len(records)
	o.progress(0, total)

	for i, rec := range records {
		o.relocateRecord(rec, votes, &result, warn)
		o.progress(i+1, total)
	}

	sourceToDest := votes.collapse()

	var byDir map[string][]string
	if scanRoot != "" {
		byDir = collectSidecars(scanRoot, o.opts.DestinationRoot, warn)
	} else {
		byDir = listSidecarsFlat(sortedKeys(sourceToDest), warn)
	}

	result.SidecarMoved = o.moveSidecars(byDir, sourceToDest, warn, false)
	return result
}

// OrganizeSidecars relocates only sidecar files found under root,
// without touching any audio file. With no primary pass there is no
// vote map, so every directory association relies on the
// "<artist> - <album>" name guess against existing destination
// directories. Used to top up an already-organized library with
// sidecars discovered later.
func (o *Organizer) OrganizeSidecars(root string) model.OrganizeResult {
	var result model.OrganizeResult
	warn := o.warnInto(&result.Warnings)

	byDir := collectSidecars(root, o.opts.DestinationRoot, warn)
	result.SidecarMoved = o.moveSidecars(byDir, nil, warn, true)
	return result
}

// relocateRecord performs steps 1-6 of the primary pass for one
// record. Failures are recorded and processing continues.
func (o *Organizer) relocateRecord(rec model.TrackRecord, votes voteTally, result *model.OrganizeResult, warn func(model.Warning)) {
	target := TargetPath(rec, o.opts.DestinationRoot)

	if samePath(rec.FilePath, target) {
		result.Skipped++
		return
	}

	rel := rec.RelativePath
	if rel == "" {
		rel = rec.FilePath
	}

	if !o.opts.DryRun {
		if err := ioutils.EnsureDir(filepath.Dir(target)); err != nil {
			warn(model.Warning{Kind: model.WarnOrganizeSkipped, Path: rel, Err: err})
			return
		}
	}

	final := nonCollidingPath(target)
	o.plan(ActionMove, ActionCopy, rec.FilePath, final)

	if !o.opts.DryRun {
		if err := o.transfer(rec.FilePath, final); err != nil {
			warn(model.Warning{Kind: model.WarnOrganizeSkipped, Path: rel, Err: err})
			return
		}
	}

	result.Moved++
	votes.add(filepath.Dir(rec.FilePath), filepath.Dir(final))
}

// moveSidecars relocates every classified sidecar file using the
// same move/copy/dry-run mechanics as audio files. Directories are
// processed in sorted order so warnings and collision suffixes are
// deterministic. reportProgress is set for the sidecar-only pass; the
// embedded sub-pass of Organize keeps its progress scoped to records.
func (o *Organizer) moveSidecars(byDir map[string][]string, sourceToDest map[string]string, warn func(model.Warning), reportProgress bool) int {
	filesTotal := 0
	for _, files := range byDir {
		filesTotal += len(files)
	}
	filesDone := 0
	progress := func() {
		if reportProgress {
			o.progress(filesDone, filesTotal)
		}
	}
	progress()

	moved := 0
	for _, srcDir := range sortedKeys(byDir) {
		files := byDir[srcDir]

		destDir := sourceToDest[srcDir]
		if destDir == "" {
			destDir = guessDestinationDir(srcDir, o.opts.DestinationRoot)
		}
		if destDir == "" {
			warn(model.Warning{Kind: model.WarnSidecarUnmapped, Path: srcDir})
			filesDone += len(files)
			progress()
			continue
		}

		if !o.opts.DryRun {
			if err := ioutils.EnsureDir(destDir); err != nil {
				warn(model.Warning{Kind: model.WarnSidecarDestSkipped, Path: destDir, Err: err})
				filesDone += len(files)
				progress()
				continue
			}
		}

		for _, candidate := range files {
			target := nonCollidingPath(filepath.Join(destDir, filepath.Base(candidate)))
			o.plan(ActionMoveSidecar, ActionCopySidecar, candidate, target)

			if !o.opts.DryRun {
				if err := o.transfer(candidate, target); err != nil {
					warn(model.Warning{Kind: model.WarnSidecarSkipped, Path: candidate, Err: err})
					filesDone++
					progress()
					continue
				}
			}

			moved++
			filesDone++
			progress()
		}
	}

	return moved
}

// transfer moves or copies src to dst per configuration.
func (o *Organizer) transfer(src, dst string) error {
	if o.opts.CopyInsteadOfMove {
		return ioutils.CopyFile(src, dst)
	}
	return ioutils.MoveFile(src, dst)
}

func (o *Organizer) progress(completed, total int) {
	if o.opts.OnProgress != nil {
		o.opts.OnProgress(completed, total)
	}
}

func (o *Organizer) plan(moveAction, copyAction, src, dst string) {
	if o.opts.OnPlan == nil {
		return
	}
	action := moveAction
	if o.opts.CopyInsteadOfMove {
		action = copyAction
	}
	o.opts.OnPlan(action, src, dst)
}

func (o *Organizer) warnInto(list *[]model.Warning) func(model.Warning) {
	return func(w model.Warning) {
		*list = append(*list, w)
		if o.opts.OnWarn != nil {
			o.opts.OnWarn(w)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
