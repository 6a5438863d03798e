package histutil

// Session is a working copy of the history used while one line is edited.
// Edits to recalled entries stay in the working copy and are discarded with
// it; the committed history is never written through a Session.
type Session struct {
	working []string
	// Position is the index of the displayed entry. The last index is the
	// draft.
	Position int
}

// Move shifts Position by n and returns the entry now displayed. It returns
// false and leaves Position unchanged if the target is outside the working
// copy.
func (s *Session) Move(n int) (string, bool) {
	i := s.Position + n
	if i < 0 || i >= len(s.working) {
		return "", false
	}
	s.Position = i
	return s.working[i], true
}

// Update records text as the content of the displayed entry.
func (s *Session) Update(text string) {
	s.working[s.Position] = text
}

// Len returns the size of the working copy, including the draft slot.
func (s *Session) Len() int { return len(s.working) }
