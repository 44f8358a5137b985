package ioutils

import (
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all parent directories if they
// don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/music/Artist/Album")
//	// Creates /music, /music/Artist, and /music/Artist/Album if needed
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// CopyFile copies a file from source to destination, preserving the
// source's permission bits and modification time.
//
// The destination file is truncated if it already exists. The source
// must be a readable regular file.
//
// Returns an error if:
//   - Source file cannot be opened or stat'd
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile("/incoming/track.mp3", "/library/Artist/Album/track.mp3")
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}

	// Carry the original timestamps so a copied library stays sorted
	// by date the way the source was.
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// MoveFile renames src to dst, falling back to copy-then-remove when
// the rename fails (typically EXDEV: src and dst are on different
// volumes).
//
// The fallback only deletes the source after the copy fully succeeds,
// so an interrupted cross-volume move never loses data.
//
// Example:
//
//	err := MoveFile("/incoming/track.mp3", "/library/Artist/Album/track.mp3")
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !isCrossDevice(err) {
		return err
	}

	if err := CopyFile(src, dst); err != nil {
		// Leave the destination behind only if it never materialized;
		// a half-written copy must not shadow the intact source.
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}

// WriteFile writes data to a file with mode 0644, creating it if
// necessary and truncating it if it exists.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// WriteFileInDir writes data to dir/name, creating dir first.
func WriteFileInDir(dir, name string, data []byte) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	return path, WriteFile(path, data)
}
