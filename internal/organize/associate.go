package organize

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// voteTally accumulates, per source directory, how many relocated
// files landed in each destination directory during the primary pass.
type voteTally map[string]map[string]int

func (t voteTally) add(srcDir, destDir string) {
	counts := t[srcDir]
	if counts == nil {
		counts = make(map[string]int)
		t[srcDir] = counts
	}
	counts[destDir]++
}

// collapse reduces the tally to a single winning destination per
// source directory. The plurality wins; equal vote counts resolve to
// the lexicographically smallest destination path, so the mapping is
// deterministic regardless of processing order.
func (t voteTally) collapse() map[string]string {
	winners := make(map[string]string, len(t))
	for srcDir, counts := range t {
		dests := make([]string, 0, len(counts))
		for dest := range counts {
			dests = append(dests, dest)
		}
		sort.Strings(dests)

		best := -1
		for _, dest := range dests {
			if counts[dest] > best {
				winners[srcDir] = dest
				best = counts[dest]
			}
		}
	}
	return winners
}

// artistAlbumSeparator splits "<artist> - <album>" directory names;
// only the first occurrence separates the halves.
const artistAlbumSeparator = " - "

// guessDestinationDir infers a destination album directory from a
// source directory's name. It only applies when the name looks like
// "<artist> - <album>" and the corresponding sanitized directory
// already exists under destinationRoot; sidecars never seed a brand
// new album directory. Returns "" when no guess can be made.
//
// The album half is cleaned of trailing release annotations first, so
// "Pink Floyd - The Wall (Remastered) [FLAC]" maps onto
// destinationRoot/Pink Floyd/The Wall.
func guessDestinationDir(srcDir, destinationRoot string) string {
	name := filepath.Base(srcDir)
	artistRaw, albumRaw, found := strings.Cut(name, artistAlbumSeparator)
	if !found {
		return ""
	}

	artist := SanitizeName(artistRaw)
	album := SanitizeName(cleanAlbumDirName(albumRaw))
	candidate := filepath.Join(destinationRoot, artist, album)

	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return candidate
	}
	return ""
}
