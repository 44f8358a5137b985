package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tunetidy/internal/model"
)

func writeTree(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("not real audio"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_FindsAudioFilesOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a/one.mp3",
		"a/two.FLAC",
		"a/cover.jpg",
		"b/three.ogg",
		"._four.mp3",
		"readme.txt",
	)

	result, err := Scan(context.Background(), root, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(result.Records), result.Records)
	}
	for _, rec := range result.Records {
		switch rec.FormatExt {
		case "mp3", "flac", "ogg":
		default:
			t.Errorf("unexpected format %q", rec.FormatExt)
		}
	}
}

func TestScan_RecordFields(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "Artist - Album/05 Some Song.mp3")

	result, err := Scan(context.Background(), root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(result.Records))
	}

	rec := result.Records[0]
	if rec.RelativePath != filepath.Join("Artist - Album", "05 Some Song.mp3") {
		t.Errorf("unexpected relative path %q", rec.RelativePath)
	}
	if rec.SizeBytes != int64(len("not real audio")) {
		t.Errorf("unexpected size %d", rec.SizeBytes)
	}
	// The fixture carries no readable tags, so metadata falls back.
	if rec.Artist != model.UnknownArtist || rec.Album != model.UnknownAlbum {
		t.Errorf("blank tags should normalize, got artist=%q album=%q", rec.Artist, rec.Album)
	}
	if rec.Title != "05 Some Song" {
		t.Errorf("title should fall back to the file stem, got %q", rec.Title)
	}
	if rec.MetadataSource != model.SourceNone {
		t.Errorf("unreadable tags should report source %q, got %q", model.SourceNone, rec.MetadataSource)
	}
}

func TestScan_DiscoveryOrderIsStable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/1.mp3", "a/2.mp3", "b/3.mp3", "c/4.mp3")

	want := []string{
		filepath.Join("a", "1.mp3"),
		filepath.Join("a", "2.mp3"),
		filepath.Join("b", "3.mp3"),
		filepath.Join("c", "4.mp3"),
	}

	// Concurrency must not perturb output order.
	for _, workers := range []int{1, 8} {
		result, err := Scan(context.Background(), root, Options{Concurrency: workers})
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Records) != len(want) {
			t.Fatalf("workers=%d: got %d records", workers, len(result.Records))
		}
		for i, rec := range result.Records {
			if rec.RelativePath != want[i] {
				t.Errorf("workers=%d: record %d = %q, want %q", workers, i, rec.RelativePath, want[i])
			}
		}
	}
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	if err == nil {
		t.Error("missing root should be an error at the boundary")
	}
}

func TestScan_UnreadableSubtreeWarnsAndContinues(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, "open/track.mp3", "locked/hidden.mp3")
	if err := os.Chmod(filepath.Join(root, "locked"), 0000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(filepath.Join(root, "locked"), 0755) })

	result, err := Scan(context.Background(), root, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Records) != 1 {
		t.Errorf("readable files should still be scanned, got %d records", len(result.Records))
	}
	found := false
	for _, w := range result.Warnings {
		if w.Kind == model.WarnScanWalk {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a walk warning, got %v", result.Warnings)
	}
}

func TestScan_ProgressReachesTotal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a/1.mp3", "a/2.mp3", "a/3.mp3")

	var last, total int
	result, err := Scan(context.Background(), root, Options{
		OnProgress: func(done, tot int) { last, total = done, tot },
	})
	if err != nil {
		t.Fatal(err)
	}

	if total != len(result.Records) {
		t.Errorf("total=%d, want %d", total, len(result.Records))
	}
	if last != total {
		t.Errorf("final progress %d/%d should be complete", last, total)
	}
}

func TestNormalizeHelpers(t *testing.T) {
	if got := NormalizeArtist("  "); got != model.UnknownArtist {
		t.Errorf("NormalizeArtist blank = %q", got)
	}
	if got := NormalizeAlbum(""); got != model.UnknownAlbum {
		t.Errorf("NormalizeAlbum blank = %q", got)
	}
	if got := NormalizeTitle("", "stem"); got != "stem" {
		t.Errorf("NormalizeTitle blank = %q", got)
	}
	if got := NormalizeTitle(" Song ", "stem"); got != "Song" {
		t.Errorf("NormalizeTitle should trim, got %q", got)
	}
}
