//go:build windows

package main

import "os"

// termWidth only honors COLUMNS on Windows; output is treated as a terminal
// when it is set.
func termWidth(_ *os.File) (int, bool) {
	n := columnsEnv()
	return n, n > 0
}
