// Package sys provides system utilities for the terminal.
//
// The subpackage eunix provides the termios plumbing behind raw mode.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 16

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// WinSize queries the size of the terminal referenced by the given file. It
// returns a 24x80 terminal when the size cannot be determined.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// NotifySignals returns a channel on which the signals relevant to an
// interactive session are delivered: resume after suspend, hangup and
// termination. The returned stop function stops the delivery.
func NotifySignals() (<-chan os.Signal, func()) { return notifySignals() }
