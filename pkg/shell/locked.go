package shell

import (
	"context"
	"sync"

	"src.sqlterm.sh/pkg/backend"
)

// lockedBackend serializes the calls that use the connection of a Backend,
// so that it is not closed by the signal handler while the session runs a
// statement on it.
type lockedBackend struct {
	mu sync.Mutex
	backend.Backend
}

func (b *lockedBackend) Connect(ctx context.Context, target string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Backend.Connect(ctx, target)
}

func (b *lockedBackend) Disconnect() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Backend.Disconnect()
}

func (b *lockedBackend) Execute(ctx context.Context, stmt string) (backend.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Backend.Execute(ctx, stmt)
}

func (b *lockedBackend) TableNames(ctx context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Backend.TableNames(ctx)
}

func (b *lockedBackend) ColumnNames(ctx context.Context, table string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Backend.ColumnNames(ctx, table)
}
