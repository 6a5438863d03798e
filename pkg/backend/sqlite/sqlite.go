// Package sqlite implements a Backend for SQLite databases, using
// github.com/mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // enable the "sqlite3" SQL driver
	"src.sqlterm.sh/pkg/backend"
	"src.sqlterm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[sqlite] ")

// Backend is a connection to a SQLite database file.
type Backend struct {
	db      *sql.DB
	path    string
	version string
}

var _ backend.Backend = (*Backend)(nil)

// New returns a Backend that is not connected yet.
func New() backend.Backend { return &Backend{} }

// Connect opens the database file at path, creating it if it does not exist.
func (b *Backend) Connect(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps temporary tables and pragmas consistent
	// across statements.
	db.SetMaxOpenConns(1)
	var version string
	if err := db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&version); err != nil {
		db.Close()
		return fmt.Errorf("connect to %s: %w", path, err)
	}
	b.db, b.path, b.version = db, path, version
	logger.Printf("connected to %s (SQLite %s)", path, version)
	return nil
}

// Disconnect closes the database.
func (b *Backend) Disconnect() error {
	if b.db == nil {
		return backend.ErrNotConnected
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// Execute runs stmt. Statements that produce result sets are run as queries,
// others as commands.
func (b *Backend) Execute(ctx context.Context, stmt string) (backend.Result, error) {
	if b.db == nil {
		return nil, backend.ErrNotConnected
	}
	if m, ok := backend.ParseMacro(stmt); ok {
		return b.macro(ctx, m)
	}
	kw := keywords(stmt)
	if returnsRows(kw, stmt) {
		rows, err := b.db.QueryContext(ctx, stmt)
		if err != nil {
			return nil, err
		}
		return scanRows(rows)
	}
	res, err := b.db.ExecContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(kw) > 0 && modifiesRows(kw[0]) {
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		return backend.Affected{Count: n}, nil
	}
	return backend.Status{Label: statusLabel(kw)}, nil
}

func (b *Backend) macro(ctx context.Context, m backend.Macro) (backend.Result, error) {
	switch m.Kind {
	case backend.DescribeTable:
		columns, err := b.columns(ctx, m.Table)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			return nil, fmt.Errorf("did not find any relation named %q", m.Table)
		}
		return backend.ColumnList(columns), nil
	default:
		names, err := b.TableNames(ctx)
		if err != nil {
			return nil, err
		}
		return backend.TableList(names), nil
	}
}

// DBName returns the file name of the database without its extension.
func (b *Backend) DBName() string {
	base := filepath.Base(b.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (b *Backend) DBType() string    { return "SQLite" }
func (b *Backend) DBVersion() string { return b.version }

// TableNames returns the names of tables and views, sorted.
func (b *Backend) TableNames(ctx context.Context) ([]string, error) {
	if b.db == nil {
		return nil, backend.ErrNotConnected
	}
	rows, err := b.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ColumnNames returns the names of the columns of table, in table order.
func (b *Backend) ColumnNames(ctx context.Context, table string) ([]string, error) {
	columns, err := b.columns(ctx, table)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names, nil
}

func (b *Backend) columns(ctx context.Context, table string) ([]backend.Column, error) {
	if b.db == nil {
		return nil, backend.ErrNotConnected
	}
	rows, err := b.db.QueryContext(ctx,
		"SELECT name, type FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var columns []backend.Column
	for rows.Next() {
		var c backend.Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (b *Backend) MatchesMacro(text string) bool { return backend.MatchesMacro(text) }

func scanRows(rows *sql.Rows) (backend.Result, error) {
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := backend.Rows{Columns: columns, Rows: []map[string]string{}}
	keys := result.Keys()
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]string, len(keys))
		for i, key := range keys {
			row[key] = format(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

func format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// keywords returns the upper-cased words at the start of stmt, ignoring
// leading comments.
func keywords(stmt string) []string {
	var words []string
	for _, line := range strings.Split(stmt, "\n") {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		for _, w := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\r' || r == ';' || r == '(' || r == ','
		}) {
			words = append(words, strings.ToUpper(w))
			if len(words) == 2 {
				return words
			}
		}
	}
	return words
}

func returnsRows(kw []string, stmt string) bool {
	if len(kw) == 0 {
		return false
	}
	switch kw[0] {
	case "SELECT", "WITH", "PRAGMA", "EXPLAIN", "VALUES":
		return true
	case "INSERT", "UPDATE", "DELETE", "REPLACE":
		return strings.Contains(strings.ToUpper(stmt), "RETURNING")
	}
	return false
}

func modifiesRows(kw string) bool {
	return kw == "INSERT" || kw == "UPDATE" || kw == "DELETE" || kw == "REPLACE"
}

func statusLabel(kw []string) string {
	switch {
	case len(kw) == 0:
		return "OK"
	case len(kw) == 2 && (kw[0] == "CREATE" || kw[0] == "DROP" || kw[0] == "ALTER"):
		return kw[0] + " " + kw[1]
	default:
		return kw[0]
	}
}
