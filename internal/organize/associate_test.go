package organize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVoteTally_PluralityWins(t *testing.T) {
	votes := make(voteTally)
	votes.add("/src/a", "/out/X")
	votes.add("/src/a", "/out/Y")
	votes.add("/src/a", "/out/Y")

	winners := votes.collapse()
	if winners["/src/a"] != "/out/Y" {
		t.Errorf("plurality destination should win, got %q", winners["/src/a"])
	}
}

func TestVoteTally_TieBreaksLexicographically(t *testing.T) {
	votes := make(voteTally)
	votes.add("/src/a", "/out/Zebra")
	votes.add("/src/a", "/out/Alpha")

	winners := votes.collapse()
	if winners["/src/a"] != "/out/Alpha" {
		t.Errorf("ties must break to the smallest path, got %q", winners["/src/a"])
	}
}

func TestGuessDestinationDir(t *testing.T) {
	destRoot := t.TempDir()
	existing := filepath.Join(destRoot, "Pink Floyd", "The Wall")
	if err := os.MkdirAll(existing, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		srcDir string
		want   string
	}{
		{"plain match", "/in/Pink Floyd - The Wall", existing},
		{"year annotation stripped", "/in/Pink Floyd - The Wall (1979)", existing},
		{"format annotation stripped", "/in/Pink Floyd - The Wall [FLAC]", existing},
		{"stacked annotations", "/in/Pink Floyd - The Wall (Remastered) [FLAC]", existing},
		{"no separator", "/in/PinkFloydTheWall", ""},
		{"nonexistent destination", "/in/Nobody - Nothing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guessDestinationDir(tt.srcDir, destRoot); got != tt.want {
				t.Errorf("guessDestinationDir(%q) = %q, want %q", tt.srcDir, got, tt.want)
			}
		})
	}
}

func TestGuessDestinationDir_FirstSeparatorSplits(t *testing.T) {
	destRoot := t.TempDir()
	// Artist half is everything before the FIRST " - ".
	existing := filepath.Join(destRoot, "Artist", "Album - Deluxe")
	if err := os.MkdirAll(existing, 0755); err != nil {
		t.Fatal(err)
	}

	got := guessDestinationDir("/in/Artist - Album - Deluxe", destRoot)
	if got != existing {
		t.Errorf("got %q, want %q", got, existing)
	}
}
