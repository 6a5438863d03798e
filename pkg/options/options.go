// Package options holds the settings of a REPL session, changed with \set and
// loaded from the rc file.
package options

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Names of the recognized options.
const (
	HistFile   = "HISTFILE"
	HistSize   = "HISTSIZE"
	HistSync   = "HISTSYNC"
	Timing     = "timing"
	Completion = "completion"
)

type kind int

const (
	stringOption kind = iota
	boolOption
	intOption
)

var known = []struct {
	name  string
	kind  kind
	value string
}{
	{HistFile, stringOption, "~/.sqlterm_history"},
	{HistSize, intOption, "500"},
	{HistSync, boolOption, "off"},
	{Timing, boolOption, "off"},
	{Completion, boolOption, "on"},
}

func kindOf(name string) kind {
	for _, o := range known {
		if o.name == name {
			return o.kind
		}
	}
	return stringOption
}

// Options maps option names to values. Recognized options are validated when
// set; other names are kept as plain strings.
type Options struct {
	values map[string]string
	names  []string
}

// New returns Options holding the defaults.
func New() *Options {
	o := &Options{values: map[string]string{}}
	for _, k := range known {
		o.put(k.name, k.value)
	}
	return o
}

func (o *Options) put(name, value string) {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = value
}

// Set sets an option. Booleans accept on/off, true/false, yes/no and 1/0 and
// are stored as on or off; HISTSIZE must be a positive integer.
func (o *Options) Set(name, value string) error {
	if name == "" {
		return fmt.Errorf("empty option name")
	}
	switch kindOf(name) {
	case boolOption:
		b, err := ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		value = onOff(b)
	case intOption:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: %q is not a positive integer", name, value)
		}
		value = strconv.Itoa(n)
	}
	o.put(name, value)
	return nil
}

// Get returns the value of an option and whether it is set.
func (o *Options) Get(name string) (string, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Names returns the names of all options, recognized ones first, then the
// others in the order they were set.
func (o *Options) Names() []string {
	return append([]string(nil), o.names...)
}

// Bool returns the value of a boolean option, false if not set or invalid.
func (o *Options) Bool(name string) bool {
	b, _ := ParseBool(o.values[name])
	return b
}

// Toggle flips a boolean option and returns its new value.
func (o *Options) Toggle(name string) bool {
	b := !o.Bool(name)
	o.put(name, onOff(b))
	return b
}

// Int returns the value of an integer option, 0 if not set or invalid.
func (o *Options) Int(name string) int {
	n, _ := strconv.Atoi(o.values[name])
	return n
}

// Path returns the value of an option with a leading ~ expanded to the home
// directory. When $HOME is not set /tmp is used instead.
func (o *Options) Path(name string) string {
	return ExpandHome(o.values[name])
}

// ExpandHome expands a leading ~ in path to the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := os.Getenv("HOME")
	if home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, path[1:])
}

// ParseBool parses the boolean values accepted by options.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean (use on or off)", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
