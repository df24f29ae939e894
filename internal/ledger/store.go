// Package ledger holds the authoritative in-memory list of transactions and
// fans every change out to persistence sinks.
package ledger

import (
	"log/slog"
	"sync"

	"github.com/Veraticus/pocketbook/internal/model"
)

// Sink receives a full snapshot after every change. Publish must not block
// on I/O and must not call back into the Store.
type Sink interface {
	Publish(snapshot []model.Transaction)
}

// Store is the single owner of the transaction list. Records are kept
// most-recent-first. Reads return copies.
type Store struct {
	logger *slog.Logger
	txs    []model.Transaction
	sinks  []Sink
	mu     sync.Mutex
}

// NewStore creates a store seeded with initial (not published).
func NewStore(initial []model.Transaction, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		txs:    clone(initial),
		logger: logger,
	}
}

// AddSink registers a sink for future changes.
func (s *Store) AddSink(sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sinks = append(s.sinks, sink)
}

// Add prepends tx. IDs are assumed unique; nothing is deduplicated.
func (s *Store) Add(tx model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = append([]model.Transaction{tx}, s.txs...)
	s.publishLocked("add", tx.ID)
}

// Update replaces the record with id in place. A missing id is a silent
// no-op; the return value only reports whether anything changed.
func (s *Store) Update(id string, tx model.Transaction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs[i] = tx
			s.publishLocked("update", id)
			return true
		}
	}
	return false
}

// Delete removes the record with id. A missing id is a silent no-op.
// Confirmation is the caller's job.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i:i], s.txs[i+1:]...)
			s.publishLocked("delete", id)
			return true
		}
	}
	return false
}

// ReplaceAll swaps in records wholesale. Records are not validated.
func (s *Store) ReplaceAll(records []model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = clone(records)
	s.publishLocked("replace_all", "")
}

// Save validates and normalizes tx the way the entry form does, then adds
// it, or updates the existing record when editing.
func (s *Store) Save(tx model.Transaction, editing bool) error {
	if err := model.ValidateForSave(tx); err != nil {
		return err
	}
	tx = tx.Normalized()
	if editing {
		s.Update(tx.ID, tx)
		return nil
	}
	s.Add(tx)
	return nil
}

// All returns a copy of every record, most recent first.
func (s *Store) All() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.txs)
}

// Snapshot is All under the name sinks and the mirror session use.
func (s *Store) Snapshot() []model.Transaction {
	return s.All()
}

// Get looks up a record by id.
func (s *Store) Get(id string) (model.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return model.Transaction{}, false
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

// publishLocked hands the current list to every sink. Called with mu held
// so sinks observe changes in order.
func (s *Store) publishLocked(op, id string) {
	s.logger.Debug("store changed", "op", op, "id", id, "count", len(s.txs))
	for _, sink := range s.sinks {
		sink.Publish(clone(s.txs))
	}
}

func clone(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)
	return out
}
