package pager

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.sqlterm.sh/pkg/cli/term"
)

const (
	shownMarker  = "\033[30;47m--More--\033[0m"
	erasedMarker = "\b\b\b\b\b\b\b\b        \b\b\b\b\b\b\b\b"
)

type keys struct{ r *strings.Reader }

func (k keys) ReadKey() (term.Key, error) { return term.ReadKey(k.r) }

type errKeys struct{ err error }

func (k errKeys) ReadKey() (term.Key, error) { return term.Key{}, k.err }

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

func setup(input string, width, height int) (*Pager, *strings.Builder) {
	var sb strings.Builder
	return New(&sb, keys{strings.NewReader(input)}, width, height), &sb
}

var flushTests = []struct {
	name      string
	lines     int
	input     string
	wantLines int
	wantBells int
	markers   int
}{
	{"fits on screen", 23, "", 23, 0, 0},
	{"quit discards the rest", 100, "q", 23, 0, 1},
	{"ctrl-c discards the rest", 100, "\x03", 23, 0, 1},
	{"end of input discards the rest", 100, "", 23, 0, 1},
	{"G emits everything", 100, "G", 100, 0, 1},
	{"enter emits one line", 100, "\rq", 24, 0, 2},
	{"space emits a screenful", 100, " zq", 69, 0, 3},
	{"other keys bell", 100, "xyq", 23, 2, 1},
	{"enter until the end", 25, "\r\r", 25, 0, 2},
	{"space past the end", 30, " ", 30, 0, 1},
}

func TestFlush(t *testing.T) {
	for _, test := range flushTests {
		t.Run(test.name, func(t *testing.T) {
			p, out := setup(test.input, 80, 24)
			p.Enqueue(numbered(test.lines)...)
			emitted, err := p.Flush(0)
			if err != nil {
				t.Errorf("Flush -> error %v", err)
			}
			if diff := cmp.Diff(numbered(test.wantLines), emitted); diff != "" {
				t.Errorf("emitted lines (-want +got):\n%s", diff)
			}
			if p.Len() != 0 {
				t.Errorf("%d lines left in the queue", p.Len())
			}
			s := out.String()
			if got := strings.Count(s, "\a"); got != test.wantBells {
				t.Errorf("got %d bells, want %d", got, test.wantBells)
			}
			if got := strings.Count(s, shownMarker); got != test.markers {
				t.Errorf("marker shown %d times, want %d", got, test.markers)
			}
			if got := strings.Count(s, erasedMarker); got != test.markers {
				t.Errorf("marker erased %d times, want %d", got, test.markers)
			}
			if got := strings.Count(s, "\n"); got != test.wantLines {
				t.Errorf("wrote %d newlines, want %d", got, test.wantLines)
			}
		})
	}
}

func TestFlush_QuitOutput(t *testing.T) {
	p, out := setup("q", 80, 24)
	p.Enqueue(numbered(100)...)
	p.Flush(0)
	want := strings.Join(numbered(23), "\n") + "\n" + shownMarker + erasedMarker
	if got := out.String(); got != want {
		t.Errorf("output:\ngot  %q\nwant %q", got, want)
	}
}

func TestFlush_Count(t *testing.T) {
	p, out := setup("", 80, 24)
	p.Enqueue(numbered(100)...)
	emitted, err := p.Flush(5)
	if err != nil || len(emitted) != 5 || p.Len() != 95 {
		t.Errorf("Flush(5) -> %d lines, %v; %d left", len(emitted), err, p.Len())
	}
	if strings.Contains(out.String(), shownMarker) {
		t.Errorf("Flush(5) showed the marker")
	}
	emitted, _ = p.Flush(200)
	if len(emitted) != 95 || p.Len() != 0 {
		t.Errorf("Flush(200) -> %d lines; %d left", len(emitted), p.Len())
	}
}

func TestFlush_ReadError(t *testing.T) {
	errRead := errors.New("read error")
	var sb strings.Builder
	p := New(&sb, errKeys{errRead}, 80, 24)
	p.Enqueue(numbered(30)...)
	emitted, err := p.Flush(0)
	if err != errRead {
		t.Errorf("Flush -> error %v, want %v", err, errRead)
	}
	if len(emitted) != 23 || p.Len() != 0 {
		t.Errorf("Flush -> %d lines; %d left", len(emitted), p.Len())
	}
}

func TestFlush_NewlineBeforeMarkerAfterFullLine(t *testing.T) {
	p, out := setup("q", 4, 3)
	p.Enqueue("abcd", "efgh", "ij", "kl")
	p.Flush(0)
	want := "abcdefgh\n" + shownMarker + erasedMarker
	if got := out.String(); got != want {
		t.Errorf("output:\ngot  %q\nwant %q", got, want)
	}
}

func TestEnqueue_Wraps(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  []line
	}{
		{"short", []string{"ab"}, []line{{"ab", true}}},
		{"trailing newline", []string{"ab\n"}, []line{{"ab", true}}},
		{"embedded newline", []string{"ab\ncd"}, []line{{"ab", true}, {"cd", true}}},
		{"empty", []string{""}, []line{{"", true}}},
		{"exact fill", []string{"abcd"}, []line{{"abcd", false}}},
		{"wrapped", []string{"abcdefghij"},
			[]line{{"abcd", false}, {"efgh", false}, {"ij", true}}},
		{"wide characters", []string{"中文字"},
			[]line{{"中文", false}, {"字", true}}},
		{"wide character at edge", []string{"abc中"},
			[]line{{"abc", false}, {"中", true}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, _ := setup("", 4, 24)
			p.Enqueue(test.texts...)
			if diff := cmp.Diff(test.want, p.lines, cmp.AllowUnexported(line{})); diff != "" {
				t.Errorf("queued lines (-want +got):\n%s", diff)
			}
		})
	}
}
