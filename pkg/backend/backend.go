// Package backend defines the interface between the REPL and the databases it
// talks to, along with what they have in common: result types, the macros and
// the parsing of connection targets.
package backend

import (
	"context"
	"errors"
	"fmt"
)

// Backend is a database the REPL sends statements to.
type Backend interface {
	// Connect opens the connection described by target.
	Connect(ctx context.Context, target string) error
	// Disconnect closes the connection.
	Disconnect() error
	// Execute runs a statement or a macro.
	Execute(ctx context.Context, stmt string) (Result, error)

	DBName() string
	DBType() string
	DBVersion() string

	TableNames(ctx context.Context) ([]string, error)
	ColumnNames(ctx context.Context, table string) ([]string, error)

	// MatchesMacro reports whether text is a macro, which is executed without
	// waiting for a statement terminator.
	MatchesMacro(text string) bool
}

// ErrNotConnected is returned by backends used before Connect or after
// Disconnect.
var ErrNotConnected = errors.New("not connected")

// Result is the outcome of a successful Execute. It is one of Rows, Affected
// and Status.
type Result interface{ isResult() }

// Rows is a result set. Each row maps the keys of the columns, as returned by
// Keys, to values rendered as text; NULL is rendered as the empty string.
type Rows struct {
	Columns []string
	Rows    []map[string]string
}

// Keys returns the row keys of the columns. See ColumnKeys.
func (r Rows) Keys() []string { return ColumnKeys(r.Columns) }

// ColumnKeys returns a distinct key for each column. A key is the column name,
// with "#n" added for the nth column sharing a name, as in
// "SELECT 1 AS a, 2 AS a".
func ColumnKeys(columns []string) []string {
	keys := make([]string, len(columns))
	used := make(map[string]bool, len(columns))
	seen := make(map[string]int, len(columns))
	for i, col := range columns {
		seen[col]++
		key := col
		if seen[col] > 1 {
			key = fmt.Sprintf("%s#%d", col, seen[col])
		}
		for used[key] {
			seen[col]++
			key = fmt.Sprintf("%s#%d", col, seen[col])
		}
		used[key] = true
		keys[i] = key
	}
	return keys
}

// Affected is the number of rows changed by a data-modifying statement, as
// reported by the database.
type Affected struct {
	Count int64
}

// Status is the outcome of a statement that neither returns rows nor changes
// any, such as "CREATE TABLE".
type Status struct {
	Label string
}

func (Rows) isResult()     {}
func (Affected) isResult() {}
func (Status) isResult()   {}
