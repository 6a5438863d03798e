//go:build unix

package sys

import (
	"os"
	"os/signal"
	"syscall"
)

// SIGCONT is delivered when the process resumes after a suspend.
const SIGCONT = syscall.SIGCONT

func notifySignals() (<-chan os.Signal, func()) {
	sigCh := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(sigCh, syscall.SIGCONT, syscall.SIGHUP, syscall.SIGTERM)
	return sigCh, func() { signal.Stop(sigCh) }
}
