package shell

import (
	"context"
	"regexp"
	"strings"

	"src.sqlterm.sh/pkg/backend"
)

var (
	// Table names are completed after FROM.
	fromPattern = regexp.MustCompile(`(?is)SELECT\s+.+\s+FROM\s+\w*$`)
	// Column names are completed after WHERE; the group is the table.
	wherePattern = regexp.MustCompile(`(?is)SELECT\s+.+\s+FROM\s+(.+?)\s+WHERE\s+\w*$`)
)

// sqlProvider offers the tables and columns of a database as completion
// candidates.
type sqlProvider struct {
	ctx     context.Context
	backend backend.Backend
}

func (p sqlProvider) Candidates(hint string) []string {
	var (
		names []string
		err   error
	)
	if m := wherePattern.FindStringSubmatch(hint); m != nil {
		fields := strings.Fields(m[1])
		if len(fields) == 0 {
			return nil
		}
		names, err = p.backend.ColumnNames(p.ctx, fields[0])
	} else if fromPattern.MatchString(hint) {
		names, err = p.backend.TableNames(p.ctx)
	}
	if err != nil {
		logger.Println("completion:", err)
		return nil
	}
	return names
}
