// Package pager shows output a screenful at a time, with a --More-- prompt
// between screens.
package pager

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"src.sqlterm.sh/pkg/cli/term"
)

const marker = "--More--"

// KeyReader is the source of keys at the --More-- prompt.
type KeyReader interface {
	ReadKey() (term.Key, error)
}

// line is a display line, no wider than the terminal.
type line struct {
	text string
	// Whether the line is to be followed by a newline. Lines filling the
	// whole width, and all but the last piece of a wrapped line, rely on the
	// terminal wrapping instead.
	newline bool
}

// Pager holds a queue of display lines.
type Pager struct {
	out    io.Writer
	keys   KeyReader
	width  int
	height int

	lines []line
	// Index of the next line to emit.
	next int
	// Whether the last emitted line lacked a newline.
	pendingWrap bool
}

// New creates a Pager for a terminal of the given size.
func New(out io.Writer, keys KeyReader, width, height int) *Pager {
	if width < 1 {
		width = 1
	}
	if height < 2 {
		height = 2
	}
	return &Pager{out: out, keys: keys, width: width, height: height}
}

// Enqueue adds text to the queue. Each argument is one logical line; a
// trailing newline is optional. Lines wider than the terminal are wrapped.
func (p *Pager) Enqueue(texts ...string) {
	for _, text := range texts {
		for _, l := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
			p.lines = append(p.lines, wrap(l, p.width)...)
		}
	}
}

// Len returns the number of lines waiting to be emitted.
func (p *Pager) Len() int { return len(p.lines) - p.next }

// Discard drops all waiting lines.
func (p *Pager) Discard() {
	p.lines = nil
	p.next = 0
}

// Flush emits lines and returns their text.
//
// With n > 0 it emits up to n lines. With n == 0 it emits everything when the
// queue fits on the screen; otherwise it emits one screenful less a line,
// shows the --More-- prompt and lets the user page through the rest: Enter
// for one more line, Space or z for another screenful, G for everything and q
// or Ctrl-C to discard the rest. End of input also discards the rest; other
// read errors are returned after discarding.
func (p *Pager) Flush(n int) ([]string, error) {
	if n > 0 {
		return p.emit(n), nil
	}
	if p.Len() < p.height {
		return p.emit(p.Len()), nil
	}
	page := p.height - 1
	emitted := p.emit(page)
	for p.Len() > 0 {
		p.showMarker()
		key, err := p.ignoreBells()
		term.Erase(p.out, len(marker))
		if err != nil {
			p.Discard()
			if err == io.EOF {
				err = nil
			}
			return emitted, err
		}
		switch {
		case key.Kind == term.Enter:
			emitted = append(emitted, p.emit(1)...)
		case key.Is(' ') || key.Is('z'):
			emitted = append(emitted, p.emit(page)...)
		case key.Is('G'):
			emitted = append(emitted, p.emit(p.Len())...)
		default: // q or Ctrl-C
			p.Discard()
			return emitted, nil
		}
	}
	return emitted, nil
}

// ignoreBells reads keys until one that the --More-- prompt acts on, ringing
// the bell for every other key.
func (p *Pager) ignoreBells() (term.Key, error) {
	for {
		key, err := p.keys.ReadKey()
		if err != nil {
			return key, err
		}
		switch {
		case key.Kind == term.Enter, key.Is(' '), key.Is('z'), key.Is('G'),
			key.Is('q'), key == term.Ctrl(term.CtrlC):
			return key, nil
		}
		term.Bell(p.out)
	}
}

func (p *Pager) showMarker() {
	if p.pendingWrap {
		io.WriteString(p.out, "\n")
		p.pendingWrap = false
	}
	term.WriteReverse(p.out, marker)
}

// emit writes up to n lines from the front of the queue.
func (p *Pager) emit(n int) []string {
	if n > p.Len() {
		n = p.Len()
	}
	var sb strings.Builder
	texts := make([]string, 0, n)
	for _, l := range p.lines[p.next : p.next+n] {
		sb.WriteString(l.text)
		if l.newline {
			sb.WriteByte('\n')
		}
		p.pendingWrap = !l.newline
		texts = append(texts, l.text)
	}
	io.WriteString(p.out, sb.String())
	p.next += n
	if p.next == len(p.lines) {
		p.Discard()
	}
	return texts
}

// wrap cuts s into pieces no wider than width display columns.
func wrap(s string, width int) []line {
	var lines []line
	var sb strings.Builder
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width && w > 0 {
			lines = append(lines, line{sb.String(), false})
			sb.Reset()
			w = 0
		}
		sb.WriteRune(r)
		w += rw
	}
	// The last piece ends with a newline unless it fills the width exactly.
	return append(lines, line{sb.String(), w < width})
}
