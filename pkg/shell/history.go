package shell

import (
	"io"
	"strings"

	"src.sqlterm.sh/pkg/cli/histutil"
	"src.sqlterm.sh/pkg/store"
)

// openHistory returns the persister for the history file at path and a
// function to release it. Files ending in .db are bbolt databases; all others
// are plain text with one entry per line.
func openHistory(path string) (histutil.Persister, func() error, error) {
	if !strings.HasSuffix(path, ".db") {
		return histutil.TextFile(path), func() error { return nil }, nil
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

// plainReader reads lines from input that is not a terminal. It prints no
// prompts.
type plainReader struct {
	r interface {
		ReadString(delim byte) (string, error)
	}
}

func (p plainReader) ReadLine(string) (string, error) {
	line, err := p.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}
