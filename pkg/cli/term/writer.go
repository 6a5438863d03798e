package term

import (
	"io"
	"strings"
)

// Escape sequences and control characters written to the terminal.
const (
	bell         = "\a"
	backspace    = "\b"
	reverseVideo = "\033[30;47m"
	resetStyle   = "\033[0m"
)

// Bell makes the terminal beep.
func Bell(w io.Writer) {
	io.WriteString(w, bell)
}

// CursorLeft moves the cursor left by n columns.
func CursorLeft(w io.Writer, n int) {
	if n > 0 {
		io.WriteString(w, strings.Repeat(backspace, n))
	}
}

// Erase blanks the n columns left of the cursor and leaves the cursor at the
// leftmost of them.
func Erase(w io.Writer, n int) {
	if n > 0 {
		CursorLeft(w, n)
		io.WriteString(w, strings.Repeat(" ", n))
		CursorLeft(w, n)
	}
}

// WriteReverse writes s in reverse video.
func WriteReverse(w io.Writer, s string) {
	io.WriteString(w, reverseVideo+s+resetStyle)
}
