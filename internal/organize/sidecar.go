package organize

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tunetidy/internal/model"
)

// sidecarExtensions is the fixed allow-list of non-audio files that
// travel with an album: artwork, liner notes, and playlist/cue sheets.
var sidecarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
	".nfo":  true,
	".txt":  true,
	".pdf":  true,
	".cue":  true,
	".m3u":  true,
	".m3u8": true,
}

// appleDoublePrefix marks macOS metadata companions ("._name"); they
// are resource-fork blobs, not real sidecars.
const appleDoublePrefix = "._"

// classifySidecar decides whether a directory entry is a sidecar
// candidate. Symlinks are resolved and must point at an existing
// regular file; dangling symlinks are silently excluded. The returned
// warning (if any) covers the rare stat race where a file vanishes
// between listing and classification.
func classifySidecar(path string, entry fs.DirEntry) (ok bool, warn *model.Warning) {
	name := entry.Name()
	if strings.HasPrefix(name, appleDoublePrefix) {
		return false, nil
	}
	if !sidecarExtensions[strings.ToLower(filepath.Ext(name))] {
		return false, nil
	}

	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, &model.Warning{Kind: model.WarnSidecarSkipped, Path: path, Err: err}
		}
		return info.Mode().IsRegular(), nil
	}

	return entry.Type().IsRegular(), nil
}

// collectSidecars recursively enumerates root and groups sidecar
// candidates by their containing directory.
//
// The destination root's own subtree is skipped entirely so that
// already-organized output is never re-classified as unprocessed
// input. Directory-level traversal errors and per-file classification
// errors are reported through warn and never abort the walk.
func collectSidecars(root, destinationRoot string, warn func(model.Warning)) map[string][]string {
	byDir := make(map[string][]string)
	destRoot := filepath.Clean(destinationRoot)

	filepath.WalkDir(filepath.Clean(root), func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory (or vanished entry): report it and
			// keep walking siblings.
			warn(model.Warning{Kind: model.WarnSidecarWalk, Path: path, Err: err})
			return nil
		}

		if entry.IsDir() {
			if path == destRoot || strings.HasPrefix(path, destRoot+string(filepath.Separator)) {
				return filepath.SkipDir
			}
			return nil
		}

		ok, w := classifySidecar(path, entry)
		if w != nil {
			warn(*w)
		}
		if ok {
			dir := filepath.Dir(path)
			byDir[dir] = append(byDir[dir], path)
		}
		return nil
	})

	return byDir
}

// listSidecarsFlat is the fallback used when no scan root is known:
// each source directory is listed non-recursively. Listing failures
// are reported per directory and do not stop the remaining ones.
func listSidecarsFlat(srcDirs []string, warn func(model.Warning)) map[string][]string {
	byDir := make(map[string][]string)

	for _, srcDir := range srcDirs {
		entries, err := os.ReadDir(srcDir)
		if err != nil {
			warn(model.Warning{Kind: model.WarnSidecarDirSkipped, Path: srcDir, Err: err})
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(srcDir, entry.Name())
			ok, w := classifySidecar(path, entry)
			if w != nil {
				warn(*w)
			}
			if ok {
				byDir[srcDir] = append(byDir[srcDir], path)
			}
		}
	}

	return byDir
}
