package shell

import (
	"context"
	"testing"
	"time"

	"src.sqlterm.sh/pkg/backend"
	"src.sqlterm.sh/pkg/backend/backendtest"
)

// blockingBackend holds Execute until release is closed.
type blockingBackend struct {
	*backendtest.Fake
	started chan struct{}
	release chan struct{}
}

func (b *blockingBackend) Execute(ctx context.Context, stmt string) (backend.Result, error) {
	close(b.started)
	<-b.release
	return b.Fake.Execute(ctx, stmt)
}

func TestLockedBackend_DisconnectWaitsForExecute(t *testing.T) {
	ctx := context.Background()
	f := backendtest.New()
	f.Connect(ctx, "test")
	inner := &blockingBackend{f, make(chan struct{}), make(chan struct{})}
	b := &lockedBackend{Backend: inner}

	executed := make(chan error, 1)
	go func() {
		_, err := b.Execute(ctx, "SELECT 1;")
		executed <- err
	}()
	<-inner.started

	disconnected := make(chan struct{})
	go func() {
		b.Disconnect()
		close(disconnected)
	}()
	select {
	case <-disconnected:
		t.Fatal("Disconnect returned while a statement was running")
	case <-time.After(20 * time.Millisecond):
	}

	close(inner.release)
	if err := <-executed; err != nil {
		t.Errorf("Execute -> %v", err)
	}
	<-disconnected
	if f.Connected {
		t.Errorf("still connected after Disconnect")
	}
}
