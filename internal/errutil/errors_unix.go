//go:build !windows

package errutil

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func isErrBrokenPipe(errno syscall.Errno) bool {
	return errno == unix.EPIPE
}
