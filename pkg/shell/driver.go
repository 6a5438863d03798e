package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"src.sqlterm.sh/pkg/backend"
	"src.sqlterm.sh/pkg/cli"
	"src.sqlterm.sh/pkg/cli/histutil"
	"src.sqlterm.sh/pkg/cli/pager"
	"src.sqlterm.sh/pkg/options"
	"src.sqlterm.sh/pkg/tablefmt"
)

// Prompt suffixes, following the database name.
const (
	primaryPrompt = "=# "
	parenPrompt   = "(# "
	contPrompt    = "-# "
)

// LineReader reads one line of input after printing a prompt. It returns
// cli.ErrInterrupted when the user cancels the line and io.EOF at the end of
// input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// DriverSpec specifies the dependencies of a Driver.
type DriverSpec struct {
	Backend backend.Backend
	Lines   LineReader
	Out     io.Writer
	// If nil, default options are used.
	Options *options.Options
	// If nil, an in-memory history is used.
	History *histutil.Store
	// Pager returns a pager for one result. If nil, results are written out
	// without paging.
	Pager func() *pager.Pager
	// SetCompletion is called when the completion option changes. It may be
	// nil.
	SetCompletion func(on bool)
	// JSON renders result sets as one JSON object per row.
	JSON bool
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time
}

// Driver reads lines, accumulates them into statements and sends complete
// statements to the backend.
type Driver struct {
	DriverSpec
	// The statement accumulated so far; empty when idle.
	sql string
}

// NewDriver creates a Driver from the spec.
func NewDriver(spec DriverSpec) *Driver {
	if spec.Options == nil {
		spec.Options = options.New()
	}
	if spec.History == nil {
		spec.History = histutil.NewStore(nil, spec.Options.Int(options.HistSize))
	}
	if spec.SetCompletion == nil {
		spec.SetCompletion = func(bool) {}
	}
	if spec.Now == nil {
		spec.Now = time.Now
	}
	return &Driver{DriverSpec: spec}
}

// Run reads and handles lines until the user quits or the input ends. It only
// returns an error when reading from the input fails.
func (d *Driver) Run(ctx context.Context) error {
	for {
		line, err := d.Lines.ReadLine(d.Prompt())
		switch {
		case err == cli.ErrInterrupted:
			d.Cancel()
			continue
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}
		if quit := d.HandleLine(ctx, line); quit {
			return nil
		}
	}
}

// Prompt returns the prompt for the next line: the primary prompt when idle,
// and a continuation prompt while a statement is being accumulated, showing
// whether a parenthesis is still open.
func (d *Driver) Prompt() string {
	suffix := primaryPrompt
	if d.sql != "" {
		suffix = contPrompt
		if parenDepth(d.sql) > 0 {
			suffix = parenPrompt
		}
	}
	return d.Backend.DBName() + suffix
}

// Pending returns the statement accumulated so far.
func (d *Driver) Pending() string { return d.sql }

// Cancel discards the statement accumulated so far.
func (d *Driver) Cancel() {
	if d.sql != "" {
		logger.Printf("discarding %q", d.sql)
	}
	d.sql = ""
}

// HandleLine handles one line of input and reports whether the user asked to
// quit.
func (d *Driver) HandleLine(ctx context.Context, line string) (quit bool) {
	trimmed := strings.TrimSpace(line)
	if isExit(trimmed) {
		return true
	}
	if d.inlineCommand(trimmed) {
		d.record(line)
		return false
	}
	d.record(line)
	if d.sql == "" && trimmed == "" {
		return false
	}
	if d.directive(trimmed, d.sql == "") {
		return false
	}
	if d.sql == "" {
		d.sql = line
	} else {
		d.sql += "\n" + line
	}

	stmt := strings.TrimSpace(d.sql)
	if strings.Contains(stmt, ";") || d.Backend.MatchesMacro(stmt) {
		d.sql = ""
		d.execute(ctx, stmt)
	}
	return false
}

func isExit(s string) bool {
	switch strings.TrimSuffix(s, ";") {
	case "exit", "quit", `\q`:
		return true
	}
	return false
}

// record adds a line to the history, writing it out when HISTSYNC is on.
func (d *Driver) record(line string) {
	line = strings.ReplaceAll(line, "\n", " ")
	if strings.TrimSpace(line) == "" {
		return
	}
	d.History.Append(line)
	if d.Options.Bool(options.HistSync) {
		if err := d.History.Sync(); err != nil {
			fmt.Fprintln(d.Out, "Warning: cannot save history:", err)
		}
	}
}

func (d *Driver) execute(ctx context.Context, stmt string) {
	logger.Printf("executing %q", stmt)
	start := d.Now()
	r, err := d.Backend.Execute(ctx, stmt)
	elapsed := d.Now().Sub(start)
	logger.Printf("took %v, err = %v", elapsed, err)
	if err != nil {
		fmt.Fprintln(d.Out, err)
		return
	}
	d.show(renderResult(r, d.JSON))
	if d.Options.Bool(options.Timing) {
		fmt.Fprintf(d.Out, "Time: %.3f ms\n", float64(elapsed)/float64(time.Millisecond))
	}
}

// show writes lines to the output, through the pager if there is one.
func (d *Driver) show(lines []string) {
	if d.Pager == nil {
		for _, line := range lines {
			fmt.Fprintln(d.Out, line)
		}
		return
	}
	p := d.Pager()
	p.Enqueue(lines...)
	if _, err := p.Flush(0); err != nil {
		logger.Println("pager:", err)
	}
}

// renderResult turns a result into display lines.
func renderResult(r backend.Result, json bool) []string {
	switch r := r.(type) {
	case backend.Rows:
		if json {
			return tablefmt.RenderJSON(r.Keys(), r.Rows)
		}
		var lines []string
		if len(r.Rows) > 0 {
			lines = tablefmt.Render(r.Columns, r.Keys(), r.Rows)
		}
		return append(lines, "", fmt.Sprintf("(%s)", plural(int64(len(r.Rows)), "row")))
	case backend.Affected:
		return []string{plural(r.Count, "row") + " affected"}
	case backend.Status:
		return []string{r.Label}
	}
	return nil
}

func plural(n int64, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// parenDepth returns the number of open parentheses minus the number of
// closing ones.
func parenDepth(s string) int {
	return strings.Count(s, "(") - strings.Count(s, ")")
}
