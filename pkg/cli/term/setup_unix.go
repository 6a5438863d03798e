//go:build unix

package term

import (
	"fmt"
	"os"
	"sync"

	"src.sqlterm.sh/pkg/sys/eunix"
)

// Mode is a terminal switched into raw mode by Setup. Its Restore method puts
// back the settings captured before the switch.
type Mode struct {
	fd    int
	saved *eunix.Termios
	raw   *eunix.Termios

	mutex    sync.Mutex
	restored bool
}

// Setup puts the terminal referred to by f into raw mode and returns a Mode
// holding both the previous and the raw settings. The caller must arrange for
// Restore to be called on every exit path.
func Setup(f *os.File) (*Mode, error) {
	fd := int(f.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}
	saved := term.Copy()
	term.SetRaw()
	if err := term.ApplyToFd(fd); err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}
	return &Mode{fd: fd, saved: saved, raw: term}, nil
}

// Reapply switches the terminal into raw mode again. It is called when the
// process resumes after being suspended, since the shell that took over the
// terminal meanwhile restores cooked mode. It is a no-op after Restore.
func (m *Mode) Reapply() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.restored {
		return nil
	}
	return m.raw.ApplyToFd(m.fd)
}

// Restore puts back the terminal settings captured by Setup. Only the first
// call has any effect, so that it can be both deferred and called from a
// signal handler.
func (m *Mode) Restore() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.restored {
		return nil
	}
	m.restored = true
	if err := m.saved.ApplyToFd(m.fd); err != nil {
		return fmt.Errorf("can't restore terminal attribute: %w", err)
	}
	return nil
}
