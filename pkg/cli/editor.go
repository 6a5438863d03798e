// Package cli implements the line editor: an edit buffer kept in sync with the
// terminal, history navigation, completion and a few in-line commands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"src.sqlterm.sh/pkg/cli/complete"
	"src.sqlterm.sh/pkg/cli/histutil"
	"src.sqlterm.sh/pkg/cli/term"
	"src.sqlterm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[cli] ")

// ErrInterrupted is returned by ReadLine when the user presses Ctrl-C. The
// partial line is returned along with it.
var ErrInterrupted = errors.New("interrupted")

// Text inserted by Tab when completion is disabled.
const tabSpaces = "    "

// In-line commands handled by the editor itself.
const (
	DebugCommand   = `\debug`
	HistoryCommand = `\h`
)

// EditorSpec specifies the configuration and dependencies of an Editor.
type EditorSpec struct {
	In  io.Reader
	Out io.Writer
	// History is navigated with Up and Down; in-line commands are appended
	// to it. If nil, an in-memory history is used.
	History *histutil.Store
	// Completer is triggered by Tab. If nil, Tab inserts spaces.
	Completer *complete.Completer
	// Width returns the width of the terminal. If nil, 80 is assumed.
	Width func() int
}

// Editor reads lines from a terminal in raw mode.
type Editor struct {
	in        *recorder
	out       io.Writer
	history   *histutil.Store
	completer *complete.Completer
	width     func() int

	debug bool
}

// NewEditor creates a new Editor from the spec.
func NewEditor(spec EditorSpec) *Editor {
	if spec.History == nil {
		spec.History = histutil.NewStore(nil, 0)
	}
	if spec.Width == nil {
		spec.Width = func() int { return 80 }
	}
	br, ok := spec.In.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(spec.In)
	}
	return &Editor{&recorder{r: br}, spec.Out, spec.History, spec.Completer, spec.Width, false}
}

// ReadKey reads one key from the input. It is used by the pager, which shares
// the editor's input.
func (ed *Editor) ReadKey() (term.Key, error) {
	ed.in.reset()
	return term.ReadKey(ed.in)
}

// SetCompleter replaces the completer used for Tab. A nil completer makes Tab
// insert spaces.
func (ed *Editor) SetCompleter(c *complete.Completer) { ed.completer = c }

// Bell rings the terminal bell.
func (ed *Editor) Bell() { term.Bell(ed.out) }

// ReadLine prints the prompt and reads a line.
//
// On Ctrl-C it returns the partial line and ErrInterrupted. On Ctrl-D with an
// empty line it returns io.EOF. Errors from the input are returned as is.
func (ed *Editor) ReadLine(prompt string) (string, error) {
	for {
		line, err := ed.readLine(prompt)
		if err != nil {
			return line, err
		}
		if !ed.handleCommand(line) {
			return line, nil
		}
	}
}

func (ed *Editor) readLine(prompt string) (string, error) {
	io.WriteString(ed.out, prompt)
	buf := NewBuffer(ed.out)
	session := ed.history.BeginSession()
	if ed.completer != nil {
		ed.completer.Reset()
	}

	for {
		ed.in.reset()
		key, err := term.ReadKey(ed.in)
		if err != nil {
			return buf.Text(), err
		}
		logger.Printf("key %v (% x)", key, ed.in.read)

		if key.Kind != term.Tab && ed.completer != nil {
			ed.completer.Reset()
		}
		ok := true
		switch key.Kind {
		case term.Printable:
			ok = buf.Insert(string(key.Rune))
		case term.Enter:
			io.WriteString(ed.out, "\n")
			return buf.Text(), nil
		case term.Backspace:
			ok = buf.DeleteLeft(1)
		case term.Delete:
			ok = buf.DeleteRight()
		case term.Left:
			ok = buf.MoveLeft(1)
		case term.Right:
			ok = buf.MoveRight(1)
		case term.WordLeft:
			ok = buf.WordLeft()
		case term.WordRight:
			ok = buf.WordRight()
		case term.Home:
			ok = buf.Home()
		case term.End:
			ok = buf.End()
		case term.Up, term.Down:
			n := -1
			if key.Kind == term.Down {
				n = 1
			}
			session.Update(buf.Text())
			var entry string
			if entry, ok = session.Move(n); ok {
				buf.Replace(entry)
			}
		case term.Tab:
			ok = ed.complete(prompt, buf)
		case term.Control:
			switch key.Rune {
			case term.CtrlA:
				ok = buf.Home()
			case term.CtrlE:
				ok = buf.End()
			case term.CtrlU:
				ok = buf.ClearToStart()
			case term.CtrlW:
				ok = buf.DeleteWord()
			case term.CtrlC:
				io.WriteString(ed.out, "^C\n")
				return buf.Text(), ErrInterrupted
			case term.CtrlD:
				if buf.Len() == 0 {
					io.WriteString(ed.out, "\\q\n")
					return "", io.EOF
				}
				ok = buf.DeleteRight()
			default:
				ok = false
			}
		default:
			ok = false
		}
		if !ok {
			term.Bell(ed.out)
		}
		if ed.debug {
			ed.trace(prompt, buf, session)
		}
	}
}

// complete handles Tab.
func (ed *Editor) complete(prompt string, buf *Buffer) bool {
	if ed.completer == nil {
		return buf.Insert(tabSpaces)
	}
	r, absorbed := ed.completer.Trigger(buf.Text())
	if absorbed {
		return true
	}
	switch r.Kind {
	case complete.Insert:
		return buf.Insert(r.Text)
	case complete.ShowOptions:
		ed.printBelow(prompt, buf, func() {
			complete.RenderGrid(ed.out, r.Candidates, ed.width())
		})
		return true
	default:
		return false
	}
}

// trace prints the bytes of the last key and the state of the buffer below
// the line, then redraws the line.
func (ed *Editor) trace(prompt string, buf *Buffer, session *histutil.Session) {
	pos := buf.Cursor()
	ed.printBelow(prompt, buf, func() {
		fmt.Fprintf(ed.out, "[keypress: % x] len=%d buffer=%q pos=%d history=%d/%d\n",
			ed.in.read, buf.Len(), buf.Text(), pos, session.Position, session.Len()-1)
	})
}

// printBelow moves to a new line, calls f, which must end its output with a
// newline, and then reprints the prompt and the buffer with the cursor where
// it was.
func (ed *Editor) printBelow(prompt string, buf *Buffer, f func()) {
	cursor := buf.Cursor()
	buf.End()
	io.WriteString(ed.out, "\n")
	f()
	io.WriteString(ed.out, prompt)
	buf.Redraw()
	buf.MoveLeft(buf.Len() - cursor)
}

// handleCommand runs line if it is an in-line command, and reports whether it
// was one.
func (ed *Editor) handleCommand(line string) bool {
	switch strings.TrimSpace(line) {
	case DebugCommand:
		ed.debug = !ed.debug
		fmt.Fprintf(ed.out, "Debug mode %s\n", onOff(ed.debug))
	case HistoryCommand:
		WriteHistory(ed.out, ed.history.All())
	default:
		return false
	}
	ed.history.Append(line)
	return true
}

// WriteHistory lists history entries, numbered from 1.
func WriteHistory(w io.Writer, entries []string) {
	for i, entry := range entries {
		fmt.Fprintf(w, "%5d  %s\n", i+1, entry)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// recorder wraps an io.ByteReader and keeps the bytes read since the last
// reset, for tracing.
type recorder struct {
	r    io.ByteReader
	read []byte
}

func (r *recorder) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err == nil {
		r.read = append(r.read, b)
	}
	return b, err
}

func (r *recorder) reset() { r.read = r.read[:0] }
