package shell_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.sqlterm.sh/pkg/backend"
	"src.sqlterm.sh/pkg/backend/backendtest"
	"src.sqlterm.sh/pkg/must"
	"src.sqlterm.sh/pkg/prog/progtest"
	. "src.sqlterm.sh/pkg/shell"
	"src.sqlterm.sh/pkg/store"
	"src.sqlterm.sh/pkg/testutil"
)

var (
	Test        = progtest.Test
	ThatSqlterm = progtest.ThatSqlterm
)

func programWith(f *backendtest.Fake) Program {
	return Program{Backends: backend.Registry{
		backend.SQLite: func() backend.Backend { return f },
	}}
}

func TestProgram_BadUsage(t *testing.T) {
	testutil.TempHome(t)
	Test(t, programWith(backendtest.New()),
		ThatSqlterm().
			ExitsWith(2).
			WritesStderrContaining("missing target\nUsage: sqlterm [flags] <target>"),
		ThatSqlterm("a.db", "b.db").
			ExitsWith(2).
			WritesStderrContaining("too many arguments\nUsage:"),
		ThatSqlterm("foo").
			ExitsWith(2).
			WritesStderrContaining(`unrecognized connection target "foo"` + "\nUsage:"),
		ThatSqlterm("postgres://localhost/db").
			ExitsWith(2).
			WritesStderrContaining("postgres targets are not supported\nUsage:"),
	)
}

func TestProgram_ConnectError(t *testing.T) {
	testutil.TempHome(t)
	f := backendtest.New()
	f.ConnectErr = errors.New("unable to open database file")
	Test(t, programWith(f),
		ThatSqlterm("-norc", "sqlite:/no/such/dir/x.db").
			ExitsWith(2).
			WritesStderr("cannot connect to sqlite:/no/such/dir/x.db: unable to open database file\n"),
	)
}

func TestProgram_PipedInput(t *testing.T) {
	home := testutil.TempHome(t)
	f := backendtest.New()
	f.Results["SELECT n\nFROM t;"] = backend.Rows{
		Columns: []string{"n"}, Rows: []map[string]string{{"n": "1"}}}

	Test(t, programWith(f),
		ThatSqlterm("-norc", "sqlite:test.db").
			WithStdin("SELECT n\nFROM t;\n\\dt\nBEGIN;").
			WritesStdout("+---+\n| n |\n+---+\n| 1 |\n+---+\n\n(1 row)\n" +
				"\n(0 rows)\n" +
				"OK\n"),
	)

	if f.Target != "test.db" {
		t.Errorf("connected to %q, want test.db", f.Target)
	}
	if f.Connected {
		t.Errorf("still connected after the session")
	}
	got := must.ReadFileString(filepath.Join(home, ".sqlterm_history"))
	if want := "SELECT n\nFROM t;\n\\dt\nBEGIN;\n"; got != want {
		t.Errorf("history file %q, want %q", got, want)
	}
}

func TestProgram_PipedInlineCommands(t *testing.T) {
	testutil.TempHome(t)
	f := backendtest.New()

	Test(t, programWith(f),
		ThatSqlterm("-norc", "sqlite:test.db").
			WithStdin("\\h\nselect 1;\n\\debug\n\\h\n").
			WritesStdout("OK\n" +
				"    1  \\h\n" +
				"    2  select 1;\n" +
				"    3  \\debug\n"),
	)

	if diff := cmp.Diff([]string{"select 1;"}, f.Executed); diff != "" {
		t.Errorf("executed (-want +got):\n%s", diff)
	}
}

func TestProgram_JSON(t *testing.T) {
	testutil.TempHome(t)
	f := backendtest.New()
	f.Results["SELECT 1 AS n;"] = backend.Rows{
		Columns: []string{"n"}, Rows: []map[string]string{{"n": "1"}}}

	Test(t, programWith(f),
		ThatSqlterm("-norc", "-json", "x.sqlite").
			WithStdin("SELECT 1 AS n;\n").
			WritesStdout(`{"n":"1"}` + "\n"),
	)
}

func TestProgram_RCFileWithHistoryDatabase(t *testing.T) {
	home := testutil.TempHome(t)
	histFile := filepath.Join(home, "history.db")
	rc := filepath.Join(home, "rc.yaml")
	must.WriteFile(rc, "HISTFILE: "+histFile+"\ntiming: on\n")

	Test(t, programWith(backendtest.New()),
		ThatSqlterm("-rc", rc, "sqlite:test.db").
			WithStdin("CREATE TABLE t(x);\nexit\n").
			WritesStdoutContaining("OK\nTime: "),
	)

	db, err := store.Open(histFile)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	cmds, err := db.Cmds()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"CREATE TABLE t(x);"}, cmds); diff != "" {
		t.Errorf("history database (-want +got):\n%s", diff)
	}
}

func TestProgram_DefaultRCFile(t *testing.T) {
	home := testutil.TempHome(t)
	must.WriteFile(filepath.Join(home, ".config", "sqlterm", "rc.yaml"), "timing: on\n")

	Test(t, programWith(backendtest.New()),
		ThatSqlterm("sqlite:test.db").
			WithStdin("SELECT 1;\n").
			WritesStdoutContaining("Time: "),
		ThatSqlterm("-norc", "sqlite:test.db").
			WithStdin("SELECT 1;\n").
			WritesStdout("OK\n"),
	)
}

func TestProgram_MissingDefaultRCFileIgnored(t *testing.T) {
	testutil.TempHome(t)
	Test(t, programWith(backendtest.New()),
		ThatSqlterm("sqlite:test.db").DoesNothing(),
	)
}

func TestProgram_RCFileErrors(t *testing.T) {
	home := testutil.TempHome(t)
	bad := filepath.Join(home, "bad.yaml")
	must.WriteFile(bad, "HISTSIZE: lots\n")

	Test(t, programWith(backendtest.New()),
		ThatSqlterm("-rc", filepath.Join(home, "missing.yaml"), "sqlite:test.db").
			WritesStderrContaining("Warning: cannot load rc file: open "),
		ThatSqlterm("-rc", bad, "sqlite:test.db").
			WritesStderr(`Warning: cannot load rc file: rc file:1: HISTSIZE: "lots" is not a positive integer` + "\n"),
	)
}

func TestProgram_HistoryOpenError(t *testing.T) {
	home := testutil.TempHome(t)
	// A directory cannot be opened as a bbolt database.
	dir := filepath.Join(home, "dir.db")
	must.WriteFile(filepath.Join(dir, "x"), "")
	rc := filepath.Join(home, "rc.yaml")
	must.WriteFile(rc, "HISTFILE: "+dir+"\n")

	exit, stdout, stderr := progtest.Run(programWith(backendtest.New()),
		"SELECT 1;\n", "-rc", rc, "sqlite:test.db")
	if exit != 0 || stdout != "OK\n" {
		t.Errorf("got exit %d, stdout %q", exit, stdout)
	}
	if !strings.HasPrefix(stderr, "Warning: cannot open history:") {
		t.Errorf("stderr %q does not warn about the history", stderr)
	}
}
