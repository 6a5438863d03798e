//go:build linux || solaris

package eunix

import "golang.org/x/sys/unix"

const (
	getAttrIOCTL = unix.TCGETS
	setAttrIOCTL = unix.TCSETS

	// Value of a disabled control character.
	vdisable = 0
)
