package backend

import (
	"fmt"
	"strings"
)

// Kinds of connection targets.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ParseTarget determines which kind of backend serves target, and returns the
// target in the form that backend's Connect expects.
//
// Recognized forms are sqlite:PATH, a path ending in .db, .sqlite or .sqlite3,
// and postgres:// or postgresql:// URLs.
func ParseTarget(target string) (kind, dsn string, err error) {
	switch {
	case target == "":
		return "", "", fmt.Errorf("no connection target")
	case strings.HasPrefix(target, "sqlite:"):
		if path := strings.TrimPrefix(target, "sqlite:"); path != "" {
			return SQLite, path, nil
		}
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		return Postgres, target, nil
	case hasAnySuffix(target, ".db", ".sqlite", ".sqlite3"):
		return SQLite, target, nil
	}
	return "", "", fmt.Errorf("unrecognized connection target %q", target)
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// Registry maps kinds of targets to constructors of backends.
type Registry map[string]func() Backend

// Open parses target, creates a backend of the right kind and returns it
// together with the target to pass to its Connect method.
func (r Registry) Open(target string) (Backend, string, error) {
	kind, dsn, err := ParseTarget(target)
	if err != nil {
		return nil, "", err
	}
	newBackend, ok := r[kind]
	if !ok {
		return nil, "", fmt.Errorf("%s targets are not supported", kind)
	}
	return newBackend(), dsn, nil
}
