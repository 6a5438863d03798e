package backend

import "strings"

// MacroKind identifies a macro.
type MacroKind int

// Macros understood by all backends.
const (
	// ListTables is `\dt`.
	ListTables MacroKind = iota + 1
	// DescribeTable is `\d TABLE`.
	DescribeTable
)

// Macro is a parsed macro.
type Macro struct {
	Kind  MacroKind
	Table string
}

// ParseMacro parses text as a macro. Surrounding whitespace and a trailing
// semicolon are ignored.
func ParseMacro(text string) (Macro, bool) {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(text), ";"))
	switch {
	case len(fields) == 1 && fields[0] == `\dt`:
		return Macro{Kind: ListTables}, true
	case len(fields) == 2 && fields[0] == `\d`:
		return Macro{Kind: DescribeTable, Table: fields[1]}, true
	}
	return Macro{}, false
}

// MatchesMacro reports whether text parses as a macro. Backends use it to
// implement Backend.MatchesMacro.
func MatchesMacro(text string) bool {
	_, ok := ParseMacro(text)
	return ok
}

// TableList is the result of ListTables.
func TableList(names []string) Rows {
	rows := make([]map[string]string, len(names))
	for i, name := range names {
		rows[i] = map[string]string{"Name": name}
	}
	return Rows{Columns: []string{"Name"}, Rows: rows}
}

// Column describes a column for DescribeTable.
type Column struct {
	Name string
	Type string
}

// ColumnList is the result of DescribeTable.
func ColumnList(columns []Column) Rows {
	rows := make([]map[string]string, len(columns))
	for i, c := range columns {
		rows[i] = map[string]string{"Column": c.Name, "Type": c.Type}
	}
	return Rows{Columns: []string{"Column", "Type"}, Rows: rows}
}
