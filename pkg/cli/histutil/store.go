// Package histutil provides the command history of the line editor: a capped
// list of committed lines, its persistence, and non-destructive navigation
// sessions.
package histutil

import (
	"strings"
	"sync"
)

// DefaultMaxSize is the number of entries kept when a Store is created with a
// non-positive cap.
const DefaultMaxSize = 500

// Persister loads and saves the committed history.
type Persister interface {
	Load() ([]string, error)
	Save(lines []string) error
}

// Appender is implemented by Persisters that can add entries to what they
// hold without rewriting it.
type Appender interface {
	Append(lines ...string) error
}

// Store holds the committed history of a session. It is safe for concurrent
// use.
type Store struct {
	// Persister is used by Load, Save and Sync. A nil Persister keeps history
	// in memory only.
	Persister Persister

	mu        sync.Mutex
	maxSize   int
	committed []string
	// Entries appended since the Persister was last read or written.
	unsynced []string
}

// NewStore returns an empty Store.
func NewStore(p Persister, maxSize int) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{Persister: p, maxSize: maxSize}
}

// MaxSize returns the cap on the number of committed entries.
func (s *Store) MaxSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxSize
}

// SetMaxSize changes the cap on the number of committed entries. The new cap
// is applied on the next Append or Save. A non-positive n is ignored.
func (s *Store) SetMaxSize(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSize = n
}

// Load replaces the committed history with what the Persister holds, keeping
// the most recent entries up to the cap.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Persister == nil {
		return nil
	}
	lines, err := s.Persister.Load()
	if err != nil {
		return err
	}
	s.committed = lines
	s.unsynced = nil
	s.trim()
	return nil
}

// Save writes the most recent entries up to the cap through the Persister.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	if s.Persister == nil {
		return nil
	}
	s.trim()
	if err := s.Persister.Save(append([]string(nil), s.committed...)); err != nil {
		return err
	}
	s.unsynced = nil
	return nil
}

// Sync makes the Persister hold every committed entry. If the Persister is an
// Appender, only the entries appended since the last Load, Save or Sync are
// written; otherwise it is the same as Save.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.Persister.(Appender)
	if !ok {
		return s.save()
	}
	if len(s.unsynced) == 0 {
		return nil
	}
	if err := a.Append(s.unsynced...); err != nil {
		return err
	}
	s.unsynced = nil
	return nil
}

// Append trims whitespace off line and adds it to the committed history,
// dropping the oldest entry on overflow. Whether empty lines are recorded is
// up to the caller.
func (s *Store) Append(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line = strings.TrimSpace(line)
	s.committed = append(s.committed, line)
	s.unsynced = append(s.unsynced, line)
	s.trim()
}

// All returns a copy of the committed history, oldest first.
func (s *Store) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.committed...)
}

// Len returns the number of committed entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.committed)
}

func (s *Store) trim() {
	if len(s.committed) > s.maxSize {
		s.committed = append([]string(nil), s.committed[len(s.committed)-s.maxSize:]...)
	}
	if len(s.unsynced) > s.maxSize {
		s.unsynced = append([]string(nil), s.unsynced[len(s.unsynced)-s.maxSize:]...)
	}
}

// BeginSession starts navigating the history. The returned Session works on a
// snapshot of the committed entries plus an empty draft slot, and starts at
// the draft.
func (s *Store) BeginSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	working := make([]string, len(s.committed)+1)
	copy(working, s.committed)
	return &Session{working: working, Position: len(s.committed)}
}
