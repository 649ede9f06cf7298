package fs

import (
	"errors"
	"syscall"
)

// isTransient reports whether an archive read is worth retrying. Network
// mounts return these while the share is busy or reconnecting.
func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EINTR) ||
		errors.Is(err, syscall.ETIMEDOUT)
}
