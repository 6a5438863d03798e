package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// vterm is a minimal terminal emulator understanding just what the editor
// writes: printable characters, backspace, newline and bell. A wide character
// occupies two cells, the second of which holds 0.
type vterm struct {
	done  []string
	cells []rune
	col   int
	bells int
}

func (vt *vterm) Write(p []byte) (int, error) {
	for _, r := range string(p) {
		switch r {
		case '\b':
			if vt.col > 0 {
				vt.col--
			}
		case '\n':
			vt.done = append(vt.done, vt.line())
			vt.cells = nil
			vt.col = 0
		case '\r':
			vt.col = 0
		case '\a':
			vt.bells++
		default:
			w := runewidth.RuneWidth(r)
			for len(vt.cells) < vt.col+w {
				vt.cells = append(vt.cells, ' ')
			}
			vt.cells[vt.col] = r
			if w == 2 {
				vt.cells[vt.col+1] = 0
			}
			vt.col += w
		}
	}
	return len(p), nil
}

// line returns the content of the current line, without trailing spaces.
func (vt *vterm) line() string {
	var sb strings.Builder
	for _, r := range vt.cells {
		if r != 0 {
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
