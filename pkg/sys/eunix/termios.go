//go:build linux || solaris || darwin || dragonfly || freebsd || netbsd || openbsd

// Package eunix holds the Unix termios plumbing used to put the terminal in
// raw mode and to restore it.
package eunix

import (
	"golang.org/x/sys/unix"
)

// Termios is the terminal attribute structure.
type Termios unix.Termios

// TermiosForFd returns the current terminal attributes of fd.
func TermiosForFd(fd int) (*Termios, error) {
	term, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	return (*Termios)(term), err
}

// ApplyToFd applies the terminal attributes to fd.
func (term *Termios) ApplyToFd(fd int) error {
	return unix.IoctlSetTermios(fd, setAttrIOCTL, (*unix.Termios)(term))
}

// Copy returns a copy of term.
func (term *Termios) Copy() *Termios {
	v := *term
	return &v
}

// SetRaw turns term into the raw mode used by the line editor: byte-by-byte
// input without echo, carriage returns translated to newlines, output
// post-processing kept, and job-control signals kept while the interrupt
// character is disabled so that Ctrl-C reaches the reader as a byte.
func (term *Termios) SetRaw() {
	term.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.IXON
	term.Iflag |= unix.ICRNL
	term.Oflag |= unix.OPOST | unix.ONLCR
	term.Oflag &^= unix.OCRNL | unix.ONOCR | unix.ONLRET
	term.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	term.Lflag |= unix.ISIG
	term.Cflag &^= unix.CSIZE | unix.PARENB
	term.Cflag |= unix.CS8
	term.Cc[unix.VINTR] = vdisable
	term.Cc[unix.VMIN] = 1
	term.Cc[unix.VTIME] = 0
}
