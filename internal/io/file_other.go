//go:build !unix

package ioutils

// isCrossDevice is conservative on platforms without EXDEV: any
// rename failure triggers the copy-then-remove fallback, which is
// correct (just slower) when the real cause was something else.
func isCrossDevice(error) bool { return true }
