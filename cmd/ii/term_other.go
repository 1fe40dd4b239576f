//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly
// +build !linux,!darwin,!freebsd,!netbsd,!openbsd,!dragonfly

package main

// Scripts are read from stdin on platforms without a termios check.
func isTerminalFd(fd uintptr) bool {
	return false
}
