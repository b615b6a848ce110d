//go:build unix

package main

import (
	"os/signal"
	"syscall"
)

// ignoreBrokenPipe turns the SIGPIPE that would kill us when a reader like
// `head` goes away into an EPIPE write error.
func ignoreBrokenPipe() {
	signal.Ignore(syscall.SIGPIPE)
}
