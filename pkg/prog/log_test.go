package prog_test

import (
	"strings"

	"src.sqlterm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[prog_test] ")

func containsLine(s, sub string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasSuffix(line, sub) {
			return true
		}
	}
	return false
}
