package errutil

import (
	"errors"
	"syscall"
)

// IsBrokenPipe reports whether err comes from writing to a pipe whose
// reading end went away, as in `rainbowcat big.txt | head`.
func IsBrokenPipe(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	return isErrBrokenPipe(errno)
}
