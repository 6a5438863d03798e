// Package backendtest provides an in-memory Backend for tests.
package backendtest

import (
	"context"
	"fmt"
	"sort"

	"src.sqlterm.sh/pkg/backend"
)

// Fake is a Backend that answers statements from fixed tables and records
// what it is asked to execute.
type Fake struct {
	Name, Type, Version string
	// Tables maps table names to column names. They are used for macros and
	// for completion.
	Tables map[string][]string
	// Results maps statements to their results. Statements not found there
	// or in Errors succeed with Status{"OK"}.
	Results map[string]backend.Result
	// Errors maps statements to the errors they fail with.
	Errors map[string]error
	// If not nil, returned by Connect.
	ConnectErr error

	Connected bool
	Target    string
	Executed  []string
}

var _ backend.Backend = (*Fake)(nil)

// New returns a Fake with a "test" database.
func New() *Fake {
	return &Fake{Name: "test", Type: "Fake", Version: "1.0",
		Tables: map[string][]string{}, Results: map[string]backend.Result{},
		Errors: map[string]error{}}
}

func (f *Fake) Connect(_ context.Context, target string) error {
	if f.ConnectErr != nil {
		return f.ConnectErr
	}
	f.Connected = true
	f.Target = target
	return nil
}

func (f *Fake) Disconnect() error {
	if !f.Connected {
		return backend.ErrNotConnected
	}
	f.Connected = false
	return nil
}

func (f *Fake) Execute(_ context.Context, stmt string) (backend.Result, error) {
	if !f.Connected {
		return nil, backend.ErrNotConnected
	}
	f.Executed = append(f.Executed, stmt)
	if m, ok := backend.ParseMacro(stmt); ok {
		switch m.Kind {
		case backend.ListTables:
			return backend.TableList(f.tableNames()), nil
		case backend.DescribeTable:
			names, ok := f.Tables[m.Table]
			if !ok {
				return nil, fmt.Errorf("no such table: %s", m.Table)
			}
			columns := make([]backend.Column, len(names))
			for i, name := range names {
				columns[i] = backend.Column{Name: name, Type: "text"}
			}
			return backend.ColumnList(columns), nil
		}
	}
	if err, ok := f.Errors[stmt]; ok {
		return nil, err
	}
	if r, ok := f.Results[stmt]; ok {
		return r, nil
	}
	return backend.Status{Label: "OK"}, nil
}

func (f *Fake) DBName() string    { return f.Name }
func (f *Fake) DBType() string    { return f.Type }
func (f *Fake) DBVersion() string { return f.Version }

func (f *Fake) TableNames(context.Context) ([]string, error) {
	return f.tableNames(), nil
}

func (f *Fake) ColumnNames(_ context.Context, table string) ([]string, error) {
	return f.Tables[table], nil
}

func (f *Fake) MatchesMacro(text string) bool { return backend.MatchesMacro(text) }

func (f *Fake) tableNames() []string {
	names := make([]string, 0, len(f.Tables))
	for name := range f.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
