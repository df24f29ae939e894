// Package app assembles the store, its durable sinks, and the sync session
// for a single CLI invocation.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/mirror"
	"github.com/Veraticus/pocketbook/internal/storage"
)

// Options configures Open.
type Options struct {
	// Opener resolves sync handles. Defaults to a mirror.Resolver.
	Opener mirror.Opener
	Logger *slog.Logger
	DBPath string
}

// App owns everything a command needs. Close it before exiting so pending
// writes reach disk and the mirror.
type App struct {
	DB       *storage.SQLiteStorage
	Store    *ledger.Store
	Sync     *mirror.Session
	local    *ledger.AsyncSink
	resolver *mirror.Resolver
	logger   *slog.Logger
}

// Open opens the database, loads the stored list, and probes for a sync
// handle. The probe never asks for permission.
func Open(ctx context.Context, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := storage.NewSQLiteStorage(opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	initial, err := ledger.Load(ctx, db)
	if err != nil {
		logger.Warn("stored transactions unreadable, starting empty", "error", err)
		initial = nil
	}

	a := &App{
		DB:     db,
		Store:  ledger.NewStore(initial, logger),
		logger: logger,
	}

	a.local = ledger.NewAsyncSink("local", ledger.PersistTo(db), logger)
	a.Store.AddSink(a.local)

	opener := opts.Opener
	if opener == nil {
		a.resolver = mirror.NewResolver(nil)
		opener = a.resolver
	}
	a.Sync = mirror.NewSession(db, opener, a.Store, logger)
	a.Store.AddSink(a.Sync)

	if err := a.Sync.Probe(ctx); err != nil {
		logger.Warn("sync handle unreadable", "error", err)
	}

	logger.Debug("app opened", "db", db.Path(), "transactions", a.Store.Len())
	return a, nil
}

// AutoRestore re-activates a recorded sync handle found by the probe.
// Without one it does nothing.
func (a *App) AutoRestore(ctx context.Context) (*mirror.Outcome, error) {
	if a.Sync.Status().State != mirror.StateLinkedInactive {
		return nil, nil
	}
	return a.Sync.Restore(ctx)
}

// Flush waits for pending local and mirrored writes.
func (a *App) Flush(ctx context.Context) error {
	return errors.Join(a.local.Flush(ctx), a.Sync.Flush(ctx))
}

// Close flushes and stops the sinks, then closes the database.
func (a *App) Close(ctx context.Context) error {
	errs := []error{
		a.local.Close(ctx),
		a.Sync.Close(ctx),
	}
	if a.resolver != nil {
		errs = append(errs, a.resolver.Close())
	}
	errs = append(errs, a.DB.Close())
	return errors.Join(errs...)
}
