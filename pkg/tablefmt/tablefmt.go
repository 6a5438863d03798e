// Package tablefmt renders rows as a bordered, fixed-width text table.
package tablefmt

import (
	"encoding/json"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// MaxWidth is the widest a column gets, in display columns. Longer values
	// continue on the next line of the row.
	MaxWidth = 30
	// MaxHeight is the number of lines a row may take; the rest of a value
	// is cut off.
	MaxHeight = 2
)

// Render renders rows as a table with a header line of column names. Each row
// maps the keys of the columns to values; missing values are shown empty. If
// keys is nil the column names are the keys. The returned lines have no
// trailing newlines.
//
//	+----+-------+
//	| id | name  |
//	+----+-------+
//	| 1  | alice |
//	+----+-------+
func Render(columns, keys []string, rows []map[string]string) []string {
	if keys == nil {
		keys = columns
	}
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = clampWidth(runewidth.StringWidth(col))
	}
	cells := make([][][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([][]string, len(columns))
		for i, key := range keys {
			pieces := split(row[key])
			cells[r][i] = pieces
			for _, p := range pieces {
				if w := runewidth.StringWidth(p); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var lines []string
	border := borderLine(widths)
	lines = append(lines, border)

	var sb strings.Builder
	sb.WriteString("|")
	for i, col := range columns {
		sb.WriteString(" " + center(runewidth.Truncate(col, widths[i], ""), widths[i]) + " |")
	}
	lines = append(lines, sb.String(), border)

	for _, row := range cells {
		height := 1
		for _, pieces := range row {
			if len(pieces) > height {
				height = len(pieces)
			}
		}
		for l := 0; l < height; l++ {
			sb.Reset()
			sb.WriteString("|")
			for i, pieces := range row {
				piece := ""
				if l < len(pieces) {
					piece = pieces[l]
				}
				sb.WriteString(" " + runewidth.FillRight(piece, widths[i]) + " |")
			}
			lines = append(lines, sb.String())
		}
	}
	return append(lines, border)
}

// RenderJSON renders each row as a JSON object with the given keys in order,
// one per line.
func RenderJSON(keys []string, rows []map[string]string) []string {
	lines := make([]string, len(rows))
	for r, row := range rows {
		var sb strings.Builder
		sb.WriteString("{")
		for i, key := range keys {
			if i > 0 {
				sb.WriteString(",")
			}
			// Marshaling a string never fails.
			k, _ := json.Marshal(key)
			v, _ := json.Marshal(row[key])
			sb.Write(k)
			sb.WriteString(":")
			sb.Write(v)
		}
		sb.WriteString("}")
		lines[r] = sb.String()
	}
	return lines
}

func borderLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2) + "+")
	}
	return sb.String()
}

// split cuts a value into at most MaxHeight pieces of at most MaxWidth display
// columns. Newlines and tabs are shown as spaces.
func split(s string) []string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
	var pieces []string
	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > MaxWidth {
			pieces = append(pieces, sb.String())
			if len(pieces) == MaxHeight {
				return pieces
			}
			sb.Reset()
			w = 0
		}
		sb.WriteRune(r)
		w += rw
	}
	return append(pieces, sb.String())
}

func clampWidth(w int) int {
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

// center pads s on both sides to width w, with the extra space on the right.
func center(s string, w int) string {
	pad := w - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}
