package model

import "fmt"

// WarningKind classifies a non-fatal failure so callers can filter or
// aggregate by category instead of string-matching log lines.
type WarningKind int

const (
	// WarnScanWalk: a subtree could not be listed during a scan.
	WarnScanWalk WarningKind = iota

	// WarnScanFileSkipped: a candidate audio file could not be read.
	WarnScanFileSkipped

	// WarnOrganizeSkipped: an audio file could not be relocated.
	WarnOrganizeSkipped

	// WarnSidecarWalk: a subtree could not be listed during the
	// sidecar walk.
	WarnSidecarWalk

	// WarnSidecarSkipped: a sidecar file could not be classified or
	// relocated.
	WarnSidecarSkipped

	// WarnSidecarDirSkipped: a source directory could not be listed
	// in the flat (no scan root) fallback.
	WarnSidecarDirSkipped

	// WarnSidecarDestSkipped: a destination directory could not be
	// created for a batch of sidecars.
	WarnSidecarDestSkipped

	// WarnSidecarUnmapped: no destination directory could be inferred
	// for a sidecar-bearing source directory. Not an I/O error.
	WarnSidecarUnmapped
)

// label returns the log prefix used in rendered warning lines. The
// wording matches the historical warning-log format.
func (k WarningKind) label() string {
	switch k {
	case WarnScanWalk:
		return "walk error"
	case WarnScanFileSkipped:
		return "file skipped"
	case WarnOrganizeSkipped:
		return "organize skipped"
	case WarnSidecarWalk:
		return "organize sidecar walk error"
	case WarnSidecarSkipped:
		return "organize sidecar skipped"
	case WarnSidecarDirSkipped:
		return "organize sidecar directory skipped"
	case WarnSidecarDestSkipped:
		return "organize sidecar destination skipped"
	case WarnSidecarUnmapped:
		return "organize sidecar directory unmapped"
	default:
		return "warning"
	}
}

// Warning is a structured, non-fatal failure report: what went wrong
// (Kind), where (Path), and the underlying cause (Err; nil for
// non-I/O categories such as WarnSidecarUnmapped).
type Warning struct {
	Kind WarningKind
	Path string
	Err  error
}

// String renders the warning in its stable human-readable form,
// e.g. "organize skipped: Artist/track.mp3: permission denied".
func (w Warning) String() string {
	if w.Err == nil {
		return fmt.Sprintf("%s: %s", w.Kind.label(), w.Path)
	}
	return fmt.Sprintf("%s: %s: %v", w.Kind.label(), w.Path, w.Err)
}

// Error makes Warning usable as an error value.
func (w Warning) Error() string { return w.String() }

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (w Warning) Unwrap() error { return w.Err }
