package histutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TextFile returns a Persister that stores history in a plain text file, one
// entry per line. A missing file loads as empty history; empty lines are
// skipped when loading.
func TextFile(path string) Persister { return textFile{path} }

type textFile struct{ path string }

func (f textFile) Load() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (f textFile) Save(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return os.WriteFile(f.path, []byte(sb.String()), 0600)
}

// Append adds lines to the end of the file, creating it if necessary.
func (f textFile) Append(lines ...string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return err
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	_, err = file.WriteString(sb.String())
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Mem is a Persister that keeps history in memory. It can be used in tests.
type Mem struct {
	Lines []string
	// If not nil, returned by the next Load or Save call, which then has no
	// other effect.
	OneOffError error
}

func (m *Mem) error() error {
	err := m.OneOffError
	m.OneOffError = nil
	return err
}

func (m *Mem) Load() ([]string, error) {
	if err := m.error(); err != nil {
		return nil, err
	}
	return append([]string(nil), m.Lines...), nil
}

func (m *Mem) Save(lines []string) error {
	if err := m.error(); err != nil {
		return err
	}
	m.Lines = append([]string(nil), lines...)
	return nil
}
