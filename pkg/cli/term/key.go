package term

import "fmt"

// Kind classifies a Key.
type Kind uint8

// Possible values of Kind.
const (
	// Invalid is produced for malformed or unrecognized byte sequences.
	Invalid Kind = iota
	// Printable is a character to be inserted; Key.Rune holds it.
	Printable
	// Control is a control character without a dedicated kind; Key.Rune
	// holds its code, e.g. 3 for Ctrl-C.
	Control
	Up
	Down
	Left
	Right
	WordLeft
	WordRight
	Home
	End
	Delete
	Enter
	Backspace
	Tab
)

var kindNames = [...]string{
	Invalid: "Invalid", Printable: "Printable", Control: "Control",
	Up: "Up", Down: "Down", Left: "Left", Right: "Right",
	WordLeft: "WordLeft", WordRight: "WordRight",
	Home: "Home", End: "End", Delete: "Delete",
	Enter: "Enter", Backspace: "Backspace", Tab: "Tab",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Key is a logical key event decoded from the terminal input.
type Key struct {
	Kind Kind
	Rune rune
}

// Control codes the editor and pager react to.
const (
	CtrlA = 0x01
	CtrlC = 0x03
	CtrlD = 0x04
	CtrlE = 0x05
	CtrlU = 0x15
	CtrlW = 0x17
)

// K returns a Key of the given kind.
func K(k Kind) Key { return Key{Kind: k} }

// P returns a Printable key for r.
func P(r rune) Key { return Key{Printable, r} }

// Ctrl returns a Control key for the given code.
func Ctrl(code rune) Key { return Key{Control, code} }

// Is reports whether k is the Printable key for r.
func (k Key) Is(r rune) bool { return k.Kind == Printable && k.Rune == r }

func (k Key) String() string {
	switch k.Kind {
	case Printable:
		return fmt.Sprintf("%q", k.Rune)
	case Control:
		return "Ctrl-" + string(k.Rune+0x40)
	default:
		return k.Kind.String()
	}
}
