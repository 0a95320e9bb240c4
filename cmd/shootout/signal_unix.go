//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// ignoreBrokenPipe makes writes to a closed stdout fail with EPIPE
// instead of killing the process.
func ignoreBrokenPipe() {
	signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)
}
