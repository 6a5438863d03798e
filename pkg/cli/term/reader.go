package term

import (
	"io"
	"unicode/utf8"
)

// Maximum number of bytes buffered for a single key. UTF-8 characters never
// exceed it, nor do the escape sequences ReadKey recognizes.
const maxSeqLen = 4

const esc = 0x1b

// ReadKey reads bytes from r until they form one logical key. It blocks only
// as long as r does.
//
// Malformed UTF-8, unrecognized escape sequences and sequences exceeding the
// 4-byte cap are consumed and reported as an Invalid key with a nil error;
// only errors from r itself are returned.
func ReadKey(r io.ByteReader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch {
	case b == esc:
		return readEscape(r)
	case b == '\r' || b == '\n':
		return K(Enter), nil
	case b == 0x7f || b == 0x08:
		return K(Backspace), nil
	case b == '\t':
		return K(Tab), nil
	case b < 0x20:
		return Ctrl(rune(b)), nil
	case b < utf8.RuneSelf:
		return P(rune(b)), nil
	}

	seq := append(make([]byte, 0, maxSeqLen), b)
	for !utf8.FullRune(seq) {
		if len(seq) == maxSeqLen {
			return K(Invalid), nil
		}
		b, err := r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		seq = append(seq, b)
	}
	ru, size := utf8.DecodeRune(seq)
	if ru == utf8.RuneError && size == 1 || size != len(seq) {
		return K(Invalid), nil
	}
	return P(ru), nil
}

// G3-style sequences: ESC O followed by exactly one byte.
var g3Seq = map[byte]Kind{
	'A': Up, 'B': Down, 'C': Right, 'D': Left, 'H': Home, 'F': End,
}

// CSI sequences without a numeric argument, identified by the final byte.
var csiSeqByLast = map[byte]Kind{
	'A': Up, 'B': Down, 'C': Right, 'D': Left, 'H': Home, 'F': End,
}

// CSI sequences with a single-digit argument, keyed by the argument and the
// final byte. ESC [ 5 C and ESC [ 5 D are what many terminals send for
// Ctrl-Right and Ctrl-Left.
var csiSeqByArg = map[[2]byte]Kind{
	{'5', 'C'}: WordRight, {'5', 'D'}: WordLeft,
	{'1', '~'}: Home, {'4', '~'}: End, {'7', '~'}: Home, {'8', '~'}: End,
	{'3', '~'}: Delete,
}

// readEscape decodes the rest of a sequence starting with ESC.
func readEscape(r io.ByteReader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch b {
	case 'O':
		b, err := r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if k, ok := g3Seq[b]; ok {
			return K(k), nil
		}
		return K(Invalid), nil
	case '[':
		b, err := r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if k, ok := csiSeqByLast[b]; ok {
			return K(k), nil
		}
		if b < '0' || b > '9' {
			return K(Invalid), nil
		}
		// ESC [ digit is three bytes; the fourth must terminate the sequence.
		last, err := r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if k, ok := csiSeqByArg[[2]byte{b, last}]; ok {
			return K(k), nil
		}
		if isCSIParam(last) {
			// Longer than the cap; drop the remainder so that its bytes are
			// not taken as typed characters.
			return K(Invalid), discardCSI(r)
		}
		return K(Invalid), nil
	default:
		return K(Invalid), nil
	}
}

func isCSIParam(b byte) bool { return ('0' <= b && b <= '9') || b == ';' }

// discardCSI consumes parameter bytes up to and including the final byte of a
// CSI sequence.
func discardCSI(r io.ByteReader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if !isCSIParam(b) {
			return nil
		}
	}
}
