//go:build unix

package ioutils

import (
	"errors"
	"syscall"
)

// isCrossDevice reports whether err is the "invalid cross-device
// link" failure os.Rename returns when src and dst live on different
// volumes.
func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
