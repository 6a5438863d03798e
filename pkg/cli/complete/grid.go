package complete

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderGrid lists candidates in rows of equal-width columns fitting width
// display columns. Each column is 2 wider than the widest candidate. Every row
// ends with a newline.
func RenderGrid(w io.Writer, candidates []string, width int) {
	if len(candidates) == 0 {
		return
	}
	colWidth := 0
	for _, c := range candidates {
		if cw := runewidth.StringWidth(c); cw > colWidth {
			colWidth = cw
		}
	}
	colWidth += 2
	perRow := width / colWidth
	if perRow < 1 {
		perRow = 1
	}

	var sb strings.Builder
	for i, c := range candidates {
		col := i % perRow
		if col == perRow-1 || i == len(candidates)-1 {
			sb.WriteString(c)
			sb.WriteByte('\n')
		} else {
			sb.WriteString(runewidth.FillRight(c, colWidth))
		}
	}
	io.WriteString(w, sb.String())
}
