// Package complete implements prefix completion for the line editor.
package complete

import (
	"strings"
)

// Provider supplies completion candidates. It is given the whole line as a
// hint and is called afresh on every trigger.
type Provider interface {
	Candidates(hint string) []string
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(hint string) []string

// Candidates calls f.
func (f ProviderFunc) Candidates(hint string) []string { return f(hint) }

// Kind is the kind of a completion Result.
type Kind int

// Possible values of Kind.
const (
	// None means there is nothing to complete; the editor bells.
	None Kind = iota
	// Insert means Result.Text is to be inserted at the cursor.
	Insert
	// ShowOptions means Result.Candidates is to be listed.
	ShowOptions
)

// Result is the outcome of the completion algorithm.
type Result struct {
	Kind       Kind
	Text       string
	Candidates []string
}

// Delimiter is appended to a unique completion and separates words.
const Delimiter = " "

// Complete runs the completion algorithm on line, with candidates from p.
//
// The word being completed is the text after the last space. A bare trigger
// (empty word) lists all candidates. Otherwise candidates prefixed by the word
// are considered: a unique one is inserted followed by a space, several are
// reduced to their longest common remainder, and when that is empty all
// candidates are listed.
func Complete(p Provider, line string) Result {
	candidates := p.Candidates(line)
	if len(candidates) == 0 {
		return Result{Kind: None}
	}
	word := line[strings.LastIndex(line, Delimiter)+1:]
	if word == "" {
		return Result{Kind: ShowOptions, Candidates: candidates}
	}

	var remainders []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			remainders = append(remainders, c[len(word):])
		}
	}
	switch len(remainders) {
	case 0:
		return Result{Kind: None}
	case 1:
		return Result{Kind: Insert, Text: remainders[0] + Delimiter}
	}
	if prefix := commonPrefix(remainders); prefix != "" {
		return Result{Kind: Insert, Text: prefix}
	}
	return Result{Kind: ShowOptions, Candidates: candidates}
}

// commonPrefix returns the longest common prefix of ss, compared rune by
// rune up to the length of the shortest string.
func commonPrefix(ss []string) string {
	first := []rune(ss[0])
	n := len(first)
	for _, s := range ss[1:] {
		rs := []rune(s)
		if len(rs) < n {
			n = len(rs)
		}
		for i := 0; i < n; i++ {
			if rs[i] != first[i] {
				n = i
				break
			}
		}
	}
	return string(first[:n])
}

// Completer runs Complete with a double-trigger debounce: a ShowOptions result
// is only delivered on the second consecutive trigger. The editor calls Reset
// whenever the buffer changes or another key is pressed.
type Completer struct {
	Provider Provider

	armed bool
}

// Trigger runs the completion algorithm. When the result lists options and the
// previous key was not also a trigger, it returns absorbed == true and the
// result must be dropped silently.
func (c *Completer) Trigger(line string) (r Result, absorbed bool) {
	r = Complete(c.Provider, line)
	if r.Kind != ShowOptions {
		c.armed = false
		return r, false
	}
	if !c.armed {
		c.armed = true
		return Result{}, true
	}
	c.armed = false
	return r, false
}

// Reset forgets a pending first trigger.
func (c *Completer) Reset() { c.armed = false }
