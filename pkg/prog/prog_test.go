package prog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "src.sqlterm.sh/pkg/prog"
	"src.sqlterm.sh/pkg/prog/progtest"
	"src.sqlterm.sh/pkg/must"
)

var (
	Test        = progtest.Test
	ThatSqlterm = progtest.ThatSqlterm
)

func TestCommonFlagHandling(t *testing.T) {
	dir := t.TempDir()
	cpuprof := filepath.Join(dir, "cpuprof")

	Test(t, testProgram{},
		ThatSqlterm("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatSqlterm("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatSqlterm("-help").
			WritesStdoutContaining("Usage: sqlterm [flags] <target>"),

		ThatSqlterm("-cpuprofile", cpuprof).DoesNothing(),
		ThatSqlterm("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// Check for the effect of -cpuprofile. There isn't much to test beyond a
	// sanity check that the profile file now exists.
	_, err := os.Stat(cpuprof)
	if err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestLogFlag(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "log")
	Test(t, testProgram{writeLog: "hello log"},
		ThatSqlterm("-log", logPath).DoesNothing(),
	)
	if got := must.ReadFileString(logPath); !containsLine(got, "hello log") {
		t.Errorf("log file content = %q", got)
	}
}

func TestFlagsPassed(t *testing.T) {
	var got Flags
	var gotArgs []string
	p := programFunc(func(_ [3]*os.File, f *Flags, args []string) error {
		got, gotArgs = *f, args
		return nil
	})
	Test(t, p, ThatSqlterm("-norc", "-rc", "x.yaml", "-json", "sqlite:db").DoesNothing())
	if !got.NoRc || got.RC != "x.yaml" || !got.JSON || len(gotArgs) != 1 || gotArgs[0] != "sqlite:db" {
		t.Errorf("got flags %+v, args %v", got, gotArgs)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatSqlterm().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatSqlterm().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatSqlterm().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestSpecialError(t *testing.T) {
	Test(t, testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatSqlterm().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"))
	Test(t, testProgram{returnErr: Exit(3)},
		ThatSqlterm().ExitsWith(3))
	Test(t, testProgram{returnErr: Exit(0)},
		ThatSqlterm().ExitsWith(0))
	Test(t, testProgram{returnErr: errors.New("connection refused")},
		ThatSqlterm().ExitsWith(2).WritesStderr("connection refused\n"))
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	writeLog    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	if p.writeLog != "" {
		logger.Println(p.writeLog)
	}
	return p.returnErr
}

type programFunc func(fds [3]*os.File, f *Flags, args []string) error

func (p programFunc) Run(fds [3]*os.File, f *Flags, args []string) error {
	return p(fds, f, args)
}
