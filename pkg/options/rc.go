package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile applies the options in a YAML file, a mapping from option names to
// scalar values:
//
//	HISTFILE: ~/.local/state/sqlterm/history.db
//	HISTSIZE: 2000
//	timing: on
//
// Options before an invalid entry stay applied.
func (o *Options) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return o.Load(data)
}

// Load is like LoadFile, for YAML already read.
func (o *Options) Load(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse rc file: %w", err)
	}
	if len(doc.Content) == 0 {
		// Empty document.
		return nil
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("rc file:%d: want a mapping of option names to values", m.Line)
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("rc file:%d: value of %s is not a scalar", v.Line, k.Value)
		}
		if err := o.Set(k.Value, v.Value); err != nil {
			return fmt.Errorf("rc file:%d: %w", k.Line, err)
		}
	}
	return nil
}
