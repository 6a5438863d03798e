// Package pgsql implements a Backend for PostgreSQL, using
// github.com/jackc/pgx/v5.
package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"src.sqlterm.sh/pkg/backend"
	"src.sqlterm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[pgsql] ")

// Backend is a connection to a PostgreSQL server.
type Backend struct {
	conn    *pgx.Conn
	version string
}

var _ backend.Backend = (*Backend)(nil)

// New returns a Backend that is not connected yet.
func New() backend.Backend { return &Backend{} }

// Connect connects to the server at url, a postgres:// or postgresql:// URL.
func (b *Backend) Connect(ctx context.Context, url string) error {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	var version string
	if err := conn.QueryRow(ctx, "SHOW server_version").Scan(&version); err != nil {
		conn.Close(ctx)
		return fmt.Errorf("query server version: %w", err)
	}
	b.conn, b.version = conn, version
	cfg := conn.Config()
	logger.Printf("connected to %s@%s:%d/%s (PostgreSQL %s)",
		cfg.User, cfg.Host, cfg.Port, cfg.Database, version)
	return nil
}

// Disconnect closes the connection.
func (b *Backend) Disconnect() error {
	if b.conn == nil {
		return backend.ErrNotConnected
	}
	err := b.conn.Close(context.Background())
	b.conn = nil
	return err
}

// Execute runs stmt with the simple query protocol, so that values arrive in
// their text form, the way psql shows them.
func (b *Backend) Execute(ctx context.Context, stmt string) (backend.Result, error) {
	if b.conn == nil {
		return nil, backend.ErrNotConnected
	}
	if m, ok := backend.ParseMacro(stmt); ok {
		return b.macro(ctx, m)
	}
	rows, err := b.conn.Query(ctx, stmt, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	result := backend.Rows{Columns: columns, Rows: []map[string]string{}}
	keys := result.Keys()
	for rows.Next() {
		values := rows.RawValues()
		row := make(map[string]string, len(keys))
		for i, key := range keys {
			row[key] = string(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return classify(result, rows.CommandTag()), nil
}

// classify picks the result kind: rows for statements that describe a result
// set, the affected count for data-modifying statements and the command tag
// otherwise.
func classify(rows backend.Rows, tag pgconn.CommandTag) backend.Result {
	switch {
	case len(rows.Columns) > 0:
		return rows
	case tag.Insert() || tag.Update() || tag.Delete():
		return backend.Affected{Count: tag.RowsAffected()}
	default:
		return backend.Status{Label: tag.String()}
	}
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

// DBName returns the name of the database connected to.
func (b *Backend) DBName() string {
	if b.conn == nil {
		return ""
	}
	return b.conn.Config().Database
}

func (b *Backend) DBType() string    { return "PostgreSQL" }
func (b *Backend) DBVersion() string { return b.version }

// TableNames returns the names of tables and views outside the system
// schemas, sorted.
func (b *Backend) TableNames(ctx context.Context) ([]string, error) {
	if b.conn == nil {
		return nil, backend.ErrNotConnected
	}
	rows, err := b.conn.Query(ctx,
		`SELECT table_name FROM information_schema.tables
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
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
	if b.conn == nil {
		return nil, backend.ErrNotConnected
	}
	rows, err := b.conn.Query(ctx,
		`SELECT column_name, data_type FROM information_schema.columns
		WHERE table_name = $1 AND table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (backend.Column, error) {
		var c backend.Column
		err := row.Scan(&c.Name, &c.Type)
		return c, err
	})
}

func (b *Backend) MatchesMacro(text string) bool { return backend.MatchesMacro(text) }
