//go:build unix

package sys

import (
	"testing"

	"golang.org/x/sys/unix"
	"src.sqlterm.sh/pkg/must"
)

func TestIsATTY_Pipe(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	if IsATTY(r.Fd()) {
		t.Errorf("IsATTY(pipe) -> true, want false")
	}
}

func TestWinSize_NotTerminal(t *testing.T) {
	r, w := must.Pipe()
	defer r.Close()
	defer w.Close()
	row, col := WinSize(r)
	if row != defaultRows || col != defaultCols {
		t.Errorf("WinSize(pipe) -> (%d, %d), want (%d, %d)",
			row, col, defaultRows, defaultCols)
	}
}

func TestNotifySignals(t *testing.T) {
	sigCh, stop := NotifySignals()
	defer stop()

	err := unix.Kill(unix.Getpid(), unix.SIGCONT)
	if err != nil {
		t.Skip("cannot send SIGCONT to myself:", err)
	}
	if sig := <-sigCh; sig != SIGCONT {
		t.Errorf("got signal %v, want SIGCONT", sig)
	}
}
