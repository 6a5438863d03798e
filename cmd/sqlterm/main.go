// Sqlterm is an interactive terminal for SQL databases. It edits statements
// on a raw-mode line editor with history and completion of table and column
// names, and pages through result tables a screenful at a time.
package main

import (
	"os"

	"src.sqlterm.sh/pkg/backend"
	"src.sqlterm.sh/pkg/backend/pgsql"
	"src.sqlterm.sh/pkg/backend/sqlite"
	"src.sqlterm.sh/pkg/buildinfo"
	"src.sqlterm.sh/pkg/prog"
	"src.sqlterm.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{},
			&shell.Program{Backends: backend.Registry{
				backend.SQLite:   sqlite.New,
				backend.Postgres: pgsql.New,
			}})))
}
