package model

import (
	"errors"
	"strings"
	"testing"
)

func TestWarning_StringWithCause(t *testing.T) {
	w := Warning{
		Kind: WarnOrganizeSkipped,
		Path: "Artist/track.mp3",
		Err:  errors.New("permission denied"),
	}

	got := w.String()
	if got != "organize skipped: Artist/track.mp3: permission denied" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestWarning_StringWithoutCause(t *testing.T) {
	w := Warning{Kind: WarnSidecarUnmapped, Path: "/music/loose"}

	got := w.String()
	if got != "organize sidecar directory unmapped: /music/loose" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestWarning_KindLabelsDistinct(t *testing.T) {
	kinds := []WarningKind{
		WarnScanWalk, WarnScanFileSkipped, WarnOrganizeSkipped,
		WarnSidecarWalk, WarnSidecarSkipped, WarnSidecarDirSkipped,
		WarnSidecarDestSkipped, WarnSidecarUnmapped,
	}

	seen := make(map[string]bool)
	for _, k := range kinds {
		label := k.label()
		if label == "" || label == "warning" {
			t.Errorf("kind %d has no label", k)
		}
		if seen[label] {
			t.Errorf("duplicate label %q", label)
		}
		seen[label] = true
	}
}

func TestWarning_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	w := Warning{Kind: WarnScanWalk, Path: "/x", Err: cause}

	if !errors.Is(w, cause) {
		t.Error("errors.Is should see through Warning to the cause")
	}
	if !strings.Contains(w.Error(), "boom") {
		t.Error("rendered warning should include the cause")
	}
}
