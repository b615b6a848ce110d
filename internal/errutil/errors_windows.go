//go:build windows

package errutil

import (
	"syscall"

	"golang.org/x/sys/windows"
)

func isErrBrokenPipe(errno syscall.Errno) bool {
	return errno == windows.ERROR_BROKEN_PIPE || errno == windows.ERROR_NO_DATA
}
