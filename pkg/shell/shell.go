// Package shell is the entry point for the interactive terminal of sqlterm.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"syscall"

	"src.sqlterm.sh/pkg/backend"
	"src.sqlterm.sh/pkg/buildinfo"
	"src.sqlterm.sh/pkg/cli"
	"src.sqlterm.sh/pkg/cli/complete"
	"src.sqlterm.sh/pkg/cli/histutil"
	"src.sqlterm.sh/pkg/cli/pager"
	"src.sqlterm.sh/pkg/cli/term"
	"src.sqlterm.sh/pkg/errutil"
	"src.sqlterm.sh/pkg/logutil"
	"src.sqlterm.sh/pkg/options"
	"src.sqlterm.sh/pkg/prog"
	"src.sqlterm.sh/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// DefaultRC is the rc file read when -rc is not given.
const DefaultRC = "~/.config/sqlterm/rc.yaml"

// Program is the shell subprogram.
type Program struct {
	// Backends maps kinds of targets to backends.
	Backends backend.Registry
}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	switch len(args) {
	case 0:
		return prog.BadUsage("missing target")
	case 1:
	default:
		return prog.BadUsage("too many arguments")
	}
	opened, dsn, err := p.Backends.Open(args[0])
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	b := &lockedBackend{Backend: opened}

	opts := options.New()
	if !f.NoRc {
		loadRC(fds[2], opts, f.RC)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := b.Connect(ctx, dsn); err != nil {
		return fmt.Errorf("cannot connect to %s: %w", args[0], err)
	}
	logger.Printf("connected to %s %s", b.DBType(), b.DBVersion())

	persister, closeHistory, err := openHistory(opts.Path(options.HistFile))
	if err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
		persister, closeHistory = nil, func() error { return nil }
	}
	history := histutil.NewStore(persister, opts.Int(options.HistSize))
	if err := history.Load(); err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot load history:", err)
	}

	spec := DriverSpec{
		Backend: b, Out: fds[1], Options: opts, History: history, JSON: f.JSON}
	restore := func() error { return nil }
	interactive := sys.IsATTY(fds[0].Fd())
	var mode *term.Mode

	if interactive {
		mode, err = term.Setup(fds[0])
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		} else {
			restore = mode.Restore
		}
		completer := &complete.Completer{Provider: sqlProvider{ctx, b}}
		ed := cli.NewEditor(cli.EditorSpec{
			In: fds[0], Out: fds[1], History: history,
			Width: func() int { _, col := sys.WinSize(fds[0]); return col },
		})
		setCompletion := func(on bool) {
			if on {
				ed.SetCompleter(completer)
			} else {
				ed.SetCompleter(nil)
			}
		}
		setCompletion(opts.Bool(options.Completion))

		spec.Lines = ed
		spec.SetCompletion = setCompletion
		spec.Pager = func() *pager.Pager {
			row, col := sys.WinSize(fds[0])
			return pager.New(fds[1], ed, col, row)
		}
		printBanner(fds[1], b)
	} else {
		spec.Lines = plainReader{bufio.NewReader(fds[0])}
	}

	var once sync.Once
	var cleanupErr error
	cleanup := func() error {
		once.Do(func() {
			cleanupErr = errutil.Multi(
				restore(), history.Save(), b.Disconnect(), closeHistory())
		})
		return cleanupErr
	}
	defer cleanup()

	if interactive {
		stop := handleSignals(mode, fds[2], func() error {
			cancel()
			return cleanup()
		})
		defer stop()
	}

	err = NewDriver(spec).Run(ctx)
	return errutil.Multi(err, cleanup())
}

func loadRC(stderr io.Writer, opts *options.Options, path string) {
	explicit := path != ""
	if !explicit {
		path = options.ExpandHome(DefaultRC)
	}
	err := opts.LoadFile(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return
	}
	fmt.Fprintln(stderr, "Warning: cannot load rc file:", err)
}

func printBanner(w io.Writer, b backend.Backend) {
	fmt.Fprintf(w, "Welcome to sqlterm %s, the interactive database terminal.\n\n",
		buildinfo.Value.Version)
	fmt.Fprintln(w, "You are now connected.")
	fmt.Fprintf(w, "Database type: %s %s.\n\n", b.DBType(), b.DBVersion())
}

// handleSignals re-applies raw mode when the process is resumed, and runs
// cleanup and exits on hangup and termination. Cleanup runs on the handling
// goroutine, so what it touches must be safe to use concurrently with the
// session. The returned function stops the handling.
func handleSignals(mode *term.Mode, stderr io.Writer, cleanup func() error) func() {
	sigCh, stop := sys.NotifySignals()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				logger.Println("signal", sig)
				if sig == sys.SIGCONT {
					if mode != nil {
						if err := mode.Reapply(); err != nil {
							logger.Println(err)
						}
					}
					continue
				}
				if err := cleanup(); err != nil {
					fmt.Fprintln(stderr, err)
				}
				os.Exit(128 + int(sig.(syscall.Signal)))
			case <-done:
				return
			}
		}
	}()
	return func() {
		stop()
		close(done)
	}
}
