package shell

import (
	"fmt"
	"strings"

	"src.sqlterm.sh/pkg/cli"
	"src.sqlterm.sh/pkg/options"
)

// directive runs a line if it is a directive, and reports whether it was one.
// \timing is recognized anywhere, leaving the statement being accumulated
// as it is; \set only at the start of a statement.
func (d *Driver) directive(line string, idle bool) bool {
	fields := strings.Fields(strings.TrimSuffix(line, ";"))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case `\timing`:
		d.timing(fields[1:])
	case `\set`:
		if !idle {
			return false
		}
		d.set(fields[1:])
	default:
		return false
	}
	return true
}

// inlineCommand handles the in-line commands of the line editor when lines do
// not come from it: \h lists the history and \debug, which traces keys, does
// nothing. It reports whether line was one of them.
func (d *Driver) inlineCommand(line string) bool {
	switch line {
	case cli.HistoryCommand:
		cli.WriteHistory(d.Out, d.History.All())
	case cli.DebugCommand:
	default:
		return false
	}
	return true
}

// \timing [on|off]
func (d *Driver) timing(args []string) {
	on := false
	switch len(args) {
	case 0:
		on = d.Options.Toggle(options.Timing)
	case 1:
		if err := d.Options.Set(options.Timing, args[0]); err != nil {
			fmt.Fprintf(d.Out, "\\timing: %v\n", err)
			return
		}
		on = d.Options.Bool(options.Timing)
	default:
		fmt.Fprintln(d.Out, `\timing: too many arguments`)
		return
	}
	if on {
		fmt.Fprintln(d.Out, "Timing is on.")
	} else {
		fmt.Fprintln(d.Out, "Timing is off.")
	}
}

// \set [NAME [VALUE]]
func (d *Driver) set(args []string) {
	switch len(args) {
	case 0:
		for _, name := range d.Options.Names() {
			d.showOption(name)
		}
	case 1:
		if _, ok := d.Options.Get(args[0]); !ok {
			fmt.Fprintf(d.Out, "\\set: %s is not set\n", args[0])
			return
		}
		d.showOption(args[0])
	default:
		name, value := args[0], strings.Join(args[1:], " ")
		if err := d.Options.Set(name, value); err != nil {
			fmt.Fprintf(d.Out, "\\set: %v\n", err)
			return
		}
		d.applyOption(name)
	}
}

func (d *Driver) showOption(name string) {
	value, _ := d.Options.Get(name)
	fmt.Fprintf(d.Out, "%s = '%s'\n", name, value)
}

// applyOption makes a changed option take effect. HISTFILE is only read at
// startup.
func (d *Driver) applyOption(name string) {
	switch name {
	case options.HistSize:
		d.History.SetMaxSize(d.Options.Int(options.HistSize))
	case options.Completion:
		d.SetCompletion(d.Options.Bool(options.Completion))
	}
}
