//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	defaultRows = 24
	defaultCols = 80
)

func winSize(file *os.File) (row, col int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return defaultRows, defaultCols
	}

	// Pick up a reasonable value for row and col if they equal zero in special
	// cases, e.g. serial consoles.
	if ws.Col == 0 {
		ws.Col = defaultCols
	}
	if ws.Row == 0 {
		ws.Row = defaultRows
	}

	return int(ws.Row), int(ws.Col)
}
