package progtest

import (
	"os"
	"testing"

	"src.sqlterm.sh/pkg/prog"
)

// Verify we don't deadlock if more output is written to stdout than can be
// buffered by a pipe.
func TestOutputCaptureDoesNotDeadlock(t *testing.T) {
	Test(t, noisyProgram{},
		ThatSqlterm().WritesStdoutContaining("hello"),
	)
}

type noisyProgram struct{}

func (noisyProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	// We need enough data to verify whether we're likely to deadlock due to
	// filling the pipe before the test completes. Pipes typically buffer 8 to
	// 128 KiB.
	bytes := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	for i := 0; i < 128*1024/len(bytes); i++ {
		fds[1].Write(bytes)
	}
	fds[1].WriteString("hello")
	return nil
}

func TestRun(t *testing.T) {
	exit, stdout, stderr := Run(echoProgram{}, "input", "a", "b")
	if exit != 0 || stdout != "input [a b]" || stderr != "" {
		t.Errorf("Run -> (%d, %q, %q)", exit, stdout, stderr)
	}
}

type echoProgram struct{}

func (echoProgram) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	buf := make([]byte, 64)
	n, _ := fds[0].Read(buf)
	fds[1].Write(buf[:n])
	fds[1].WriteString(" [")
	for i, arg := range args {
		if i > 0 {
			fds[1].WriteString(" ")
		}
		fds[1].WriteString(arg)
	}
	fds[1].WriteString("]")
	return nil
}
