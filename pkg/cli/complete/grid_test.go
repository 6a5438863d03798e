package complete

import (
	"strings"
	"testing"
)

var renderGridTests = []struct {
	name       string
	candidates []string
	width      int
	want       string
}{
	{"one row", []string{"apple", "apply", "apt"}, 80,
		"apple  apply  apt\n"},
	{"wraps", []string{"apple", "apply", "apt"}, 15,
		"apple  apply\napt\n"},
	{"narrow terminal", []string{"apple", "apply"}, 3,
		"apple\napply\n"},
	{"wide characters", []string{"表", "ab"}, 80,
		"表  ab\n"},
	{"last candidate printed", []string{"a", "b", "c", "d"}, 6,
		"a  b\nc  d\n"},
	{"empty", nil, 80, ""},
}

func TestRenderGrid(t *testing.T) {
	for _, test := range renderGridTests {
		t.Run(test.name, func(t *testing.T) {
			var sb strings.Builder
			RenderGrid(&sb, test.candidates, test.width)
			if got := sb.String(); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}
