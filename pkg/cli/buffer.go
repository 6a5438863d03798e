package cli

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"src.sqlterm.sh/pkg/cli/term"
)

// Buffer is the line being edited. It mirrors every change to the terminal
// before returning, assuming the terminal cursor sits where Buffer's cursor
// is. Cursor movement is done with backspaces, one per display column.
//
// Methods that can fail return false and leave the Buffer and the terminal
// untouched; the caller is expected to bell.
type Buffer struct {
	out    io.Writer
	text   []rune
	cursor int
}

// NewBuffer returns an empty Buffer drawing to out.
func NewBuffer(out io.Writer) *Buffer {
	return &Buffer{out: out}
}

// Text returns the content of the buffer.
func (b *Buffer) Text() string { return string(b.text) }

// Cursor returns the cursor position, in runes.
func (b *Buffer) Cursor() int { return b.cursor }

// Len returns the length of the buffer, in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Insert inserts s at the cursor. Only the inserted text and the tail after
// it are redrawn.
func (b *Buffer) Insert(s string) bool {
	rs := []rune(s)
	tail := b.text[b.cursor:]
	b.write(string(rs) + string(tail))
	term.CursorLeft(b.out, width(tail))

	text := make([]rune, 0, len(b.text)+len(rs))
	text = append(text, b.text[:b.cursor]...)
	text = append(text, rs...)
	b.text = append(text, tail...)
	b.cursor += len(rs)
	return true
}

// MoveLeft moves the cursor n runes to the left.
func (b *Buffer) MoveLeft(n int) bool {
	if n < 0 || n > b.cursor {
		return false
	}
	term.CursorLeft(b.out, width(b.text[b.cursor-n:b.cursor]))
	b.cursor -= n
	return true
}

// MoveRight moves the cursor n runes to the right, by reprinting the runes
// passed over.
func (b *Buffer) MoveRight(n int) bool {
	if n < 0 || b.cursor+n > len(b.text) {
		return false
	}
	b.write(string(b.text[b.cursor : b.cursor+n]))
	b.cursor += n
	return true
}

// Home moves the cursor to the start of the line.
func (b *Buffer) Home() bool { return b.MoveLeft(b.cursor) }

// End moves the cursor to the end of the line.
func (b *Buffer) End() bool { return b.MoveRight(len(b.text) - b.cursor) }

// WordLeft moves the cursor to the start of the word before it. It fails at
// the start of the line.
func (b *Buffer) WordLeft() bool {
	if b.cursor == 0 {
		return false
	}
	return b.MoveLeft(b.cursor - b.prevWordStart())
}

// WordRight moves the cursor to the end of the word after it. It fails at the
// end of the line.
func (b *Buffer) WordRight() bool {
	if b.cursor == len(b.text) {
		return false
	}
	return b.MoveRight(b.nextWordEnd() - b.cursor)
}

// DeleteLeft removes the n runes before the cursor. It fails when there are
// fewer than n.
func (b *Buffer) DeleteLeft(n int) bool {
	if n < 0 || n > b.cursor {
		return false
	}
	if n == 0 {
		return true
	}
	w := width(b.text[b.cursor-n : b.cursor])
	tail := b.text[b.cursor:]
	term.CursorLeft(b.out, w)
	b.write(string(tail) + strings.Repeat(" ", w))
	term.CursorLeft(b.out, width(tail)+w)

	b.text = append(b.text[:b.cursor-n], tail...)
	b.cursor -= n
	return true
}

// DeleteRight removes the rune under the cursor. It fails at the end of the
// line.
func (b *Buffer) DeleteRight() bool {
	if b.cursor == len(b.text) {
		return false
	}
	w := runewidth.RuneWidth(b.text[b.cursor])
	tail := b.text[b.cursor+1:]
	b.write(string(tail) + strings.Repeat(" ", w))
	term.CursorLeft(b.out, width(tail)+w)

	b.text = append(b.text[:b.cursor], tail...)
	return true
}

// ClearToStart removes everything before the cursor.
func (b *Buffer) ClearToStart() bool { return b.DeleteLeft(b.cursor) }

// DeleteWord removes the word before the cursor, along with the spaces
// between it and the cursor. It fails at the start of the line.
func (b *Buffer) DeleteWord() bool {
	if b.cursor == 0 {
		return false
	}
	return b.DeleteLeft(b.cursor - b.prevWordStart())
}

// Replace erases the line and replaces it with s, leaving the cursor at the
// end.
func (b *Buffer) Replace(s string) {
	term.CursorLeft(b.out, width(b.text[:b.cursor]))
	w := width(b.text)
	b.write(strings.Repeat(" ", w))
	term.CursorLeft(b.out, w)

	b.text = []rune(s)
	b.cursor = len(b.text)
	b.write(s)
}

// Redraw prints the whole buffer and moves the terminal cursor back to the
// buffer's cursor. It is used after the line has been printed over, with the
// terminal cursor right after a fresh prompt.
func (b *Buffer) Redraw() {
	b.write(string(b.text))
	term.CursorLeft(b.out, width(b.text[b.cursor:]))
}

// prevWordStart returns the index where the word before the cursor starts:
// trailing spaces are skipped, then the word extends to the nearest space.
func (b *Buffer) prevWordStart() int {
	i := b.cursor
	for i > 0 && b.text[i-1] == ' ' {
		i--
	}
	for i > 0 && b.text[i-1] != ' ' {
		i--
	}
	return i
}

// nextWordEnd returns the index where the word after the cursor ends: leading
// spaces are skipped, then the word extends to the nearest space.
func (b *Buffer) nextWordEnd() int {
	i := b.cursor
	for i < len(b.text) && b.text[i] == ' ' {
		i++
	}
	for i < len(b.text) && b.text[i] != ' ' {
		i++
	}
	return i
}

func (b *Buffer) write(s string) {
	if s != "" {
		io.WriteString(b.out, s)
	}
}

// width returns the number of display columns rs occupies.
func width(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += runewidth.RuneWidth(r)
	}
	return w
}
