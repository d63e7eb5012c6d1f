//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// termWidth reports the column count of f and whether f is a terminal.
// COLUMNS overrides the detected width; piped output has width 0 unless
// COLUMNS is set.
func termWidth(f *os.File) (int, bool) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	tty := err == nil && ws != nil
	if n := columnsEnv(); n > 0 {
		return n, tty
	}
	if tty && ws.Col > 0 {
		return int(ws.Col), true
	}
	return 0, tty
}
