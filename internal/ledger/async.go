package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/pocketbook/internal/model"
)

// WriteFunc persists one snapshot.
type WriteFunc func(ctx context.Context, snapshot []model.Transaction) error

// AsyncSink runs a WriteFunc on a single goroutine. It holds at most one
// pending snapshot: a newer Publish replaces an unwritten older one, so the
// last write wins and writes never complete out of order. Failures are
// logged and dropped; nothing is retried.
type AsyncSink struct {
	ctx      context.Context
	write    WriteFunc
	logger   *slog.Logger
	wake     chan struct{}
	done     chan struct{}
	cancel   context.CancelFunc
	name     string
	pending  []model.Transaction
	waiters  []chan struct{}
	mu       sync.Mutex
	stopOnce sync.Once
	has      bool
	busy     bool
	closed   bool
}

// NewAsyncSink starts the writer goroutine. Call Close to stop it.
func NewAsyncSink(name string, write WriteFunc, logger *slog.Logger) *AsyncSink {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &AsyncSink{
		ctx:    ctx,
		cancel: cancel,
		name:   name,
		write:  write,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

// Publish queues snapshot, replacing any snapshot not yet written.
func (a *AsyncSink) Publish(snapshot []model.Transaction) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.pending = snapshot
	a.has = true
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every published snapshot has been written or ctx ends.
func (a *AsyncSink) Flush(ctx context.Context) error {
	a.mu.Lock()
	if !a.has && !a.busy {
		a.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	a.waiters = append(a.waiters, ch)
	a.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes within ctx, then stops the writer. Later publishes are
// dropped.
func (a *AsyncSink) Close(ctx context.Context) error {
	err := a.Flush(ctx)

	a.stopOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.mu.Unlock()
		a.cancel()
		<-a.done
	})
	return err
}

func (a *AsyncSink) run() {
	defer close(a.done)

	for {
		select {
		case <-a.ctx.Done():
			a.releaseWaiters()
			return
		case <-a.wake:
		}

		for {
			a.mu.Lock()
			if !a.has {
				a.busy = false
				waiters := a.waiters
				a.waiters = nil
				a.mu.Unlock()
				for _, ch := range waiters {
					close(ch)
				}
				break
			}
			snapshot := a.pending
			a.pending = nil
			a.has = false
			a.busy = true
			a.mu.Unlock()

			if err := a.write(a.ctx, snapshot); err != nil {
				a.logger.Error("sink write failed", "sink", a.name, "records", len(snapshot), "error", err)
			} else {
				a.logger.Debug("sink write succeeded", "sink", a.name, "records", len(snapshot))
			}
		}
	}
}

func (a *AsyncSink) releaseWaiters() {
	a.mu.Lock()
	waiters := a.waiters
	a.waiters = nil
	a.mu.Unlock()
	for _, ch := range waiters {
		close(ch)
	}
}
