package mirror

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/service"
)

// RevokedNotice is shown after a mirrored write lost permission.
const RevokedNotice = "sync permission was revoked; run `pocket sync restore` to resume"

// Replacer is the part of the transaction store a Session needs.
type Replacer interface {
	Snapshot() []model.Transaction
	ReplaceAll(records []model.Transaction)
}

// Outcome reports what activation imported from the target.
type Outcome struct {
	// ImportErr is set when the target had content that was not a list of
	// transactions. The store is left unchanged in that case.
	ImportErr error
	Imported  int
}

// Status is a point-in-time view of a Session.
type Status struct {
	URI    string
	Notice string
	State  State
}

// Session mirrors the store to a linked Target. It implements ledger.Sink;
// writes run on their own goroutine so Publish never blocks on I/O.
type Session struct {
	kv     service.KVStore
	opener Opener
	store  Replacer
	logger *slog.Logger
	writer *ledger.AsyncSink
	now    func() time.Time

	mu         sync.Mutex
	state      State
	handle     *Handle
	target     Target
	notice     string
	generation uint64
}

// NewSession creates an Unlinked session. Call Probe to pick up a handle
// recorded by an earlier run.
func NewSession(kv service.KVStore, opener Opener, store Replacer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		kv:     kv,
		opener: opener,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	s.writer = ledger.NewAsyncSink("mirror", s.mirror, logger)
	return s
}

// Probe checks for a recorded handle. It never requests permission, so the
// best it can reach is StateLinkedInactive.
func (s *Session) Probe(ctx context.Context) error {
	h, err := loadHandle(ctx, s.kv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if h == nil || s.state == StateActive {
		return nil
	}
	s.state = StateLinkedInactive
	s.handle = h
	s.logger.Debug("sync handle found", "uri", h.URI)
	return nil
}

// Link asks pick for a target, requests permission, records the handle, and
// imports the target's content. A canceled pick returns ErrCanceled and
// changes nothing. Other failures leave the state unchanged and return a
// common.UserError.
func (s *Session) Link(ctx context.Context, pick Picker) (*Outcome, error) {
	h, err := pick(ctx)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			s.logger.Debug("sync link canceled")
			return nil, ErrCanceled
		}
		return nil, common.NewUserError("Could not choose a sync file", err)
	}
	h.LinkedAt = s.now().UTC()

	target, data, err := s.acquire(ctx, h)
	if err != nil {
		return nil, common.NewUserError(failureMessage("link", err), err)
	}

	if err := saveHandle(ctx, s.kv, h); err != nil {
		return nil, common.NewUserError("Could not remember the sync file", err)
	}

	s.detach()
	out := s.importContent(data, target)
	s.activate(h, target)
	s.logger.Info("sync linked", "target", target.String(), "imported", out.Imported)
	return out, nil
}

// Restore re-activates the recorded handle. With nothing recorded it does
// nothing and returns a nil Outcome. If access is refused the session drops
// to StateUnlinked; the record stays so a later Link or Restore can replace
// or retry it.
func (s *Session) Restore(ctx context.Context) (*Outcome, error) {
	h, err := loadHandle(ctx, s.kv)
	if err != nil {
		return nil, err
	}
	if h == nil {
		s.logger.Debug("no sync handle to restore")
		return nil, nil
	}

	target, data, err := s.acquire(ctx, *h)
	if err != nil {
		s.mu.Lock()
		s.state = StateUnlinked
		s.handle = h
		s.target = nil
		s.generation++
		s.mu.Unlock()

		s.logger.Warn("sync restore failed", "uri", h.URI, "error", err)
		return nil, common.NewUserError(failureMessage("restore", err), err)
	}

	s.detach()
	out := s.importContent(data, target)
	s.activate(*h, target)
	s.logger.Info("sync restored", "target", target.String(), "imported", out.Imported)
	return out, nil
}

// Unlink forgets the recorded handle and stops mirroring.
func (s *Session) Unlink(ctx context.Context) error {
	if err := s.kv.Delete(ctx, HandleKey); err != nil {
		return fmt.Errorf("failed to remove sync handle: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnlinked
	s.handle = nil
	s.target = nil
	s.notice = ""
	s.generation++
	return nil
}

// Status reports the current state and the handle it refers to.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, Notice: s.notice}
	if s.handle != nil {
		st.URI = s.handle.URI
	}
	return st
}

// Publish implements ledger.Sink. Snapshots are dropped unless Active.
func (s *Session) Publish(snapshot []model.Transaction) {
	s.mu.Lock()
	active := s.state == StateActive
	s.mu.Unlock()

	if active {
		s.writer.Publish(snapshot)
	}
}

// Flush waits for the pending mirrored write.
func (s *Session) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

// Close flushes and stops the writer.
func (s *Session) Close(ctx context.Context) error {
	return s.writer.Close(ctx)
}

// acquire opens h, obtains permission and reads the current content.
// Session state is not touched.
func (s *Session) acquire(ctx context.Context, h Handle) (Target, []byte, error) {
	target, err := s.opener.Open(ctx, h)
	if err != nil {
		return nil, nil, err
	}
	if err := target.RequestPermission(ctx); err != nil {
		return nil, nil, err
	}
	data, err := target.Read(ctx)
	if err != nil {
		return nil, nil, err
	}
	return target, data, nil
}

// importContent replaces the store with data when it holds a list. Empty
// content imports nothing. The store is updated without holding s.mu since
// the store publishes back into this session.
func (s *Session) importContent(data []byte, target Target) *Outcome {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Outcome{}
	}

	records, err := model.DecodeList(data)
	if err != nil {
		s.logger.Warn("sync target content not imported", "target", target.String(), "error", err)
		return &Outcome{ImportErr: fmt.Errorf("%w: %w", common.ErrParseFailed, err)}
	}

	s.store.ReplaceAll(records)
	return &Outcome{Imported: len(records)}
}

// detach stops mirroring to the current target before an import replaces
// the store, so the imported records never reach the previous target.
func (s *Session) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateActive {
		s.state = StateLinkedInactive
	}
	s.target = nil
	s.generation++
}

// activate makes target current and mirrors the store's present content.
func (s *Session) activate(h Handle, target Target) {
	s.mu.Lock()
	s.state = StateActive
	s.handle = &h
	s.target = target
	s.notice = ""
	s.generation++
	s.mu.Unlock()

	s.writer.Publish(s.store.Snapshot())
}

// mirror is the writer's WriteFunc.
func (s *Session) mirror(ctx context.Context, snapshot []model.Transaction) error {
	s.mu.Lock()
	if s.state != StateActive || s.target == nil {
		s.mu.Unlock()
		return nil
	}
	target, gen := s.target, s.generation
	s.mu.Unlock()

	data, err := model.EncodeListIndent(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode mirror content: %w", err)
	}

	if err := target.Write(ctx, data); err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			s.demote(gen)
		}
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// demote drops the in-memory target after a revoked write. Failures from an
// earlier activation are ignored.
func (s *Session) demote(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.state != StateActive {
		return
	}
	s.state = StateLinkedInactive
	s.target = nil
	s.notice = RevokedNotice
	s.generation++
	s.logger.Warn("sync permission revoked", "uri", s.handleURI())
}

func (s *Session) handleURI() string {
	if s.handle == nil {
		return ""
	}
	return s.handle.URI
}

func failureMessage(action string, err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return fmt.Sprintf("Could not %s sync: permission to the file was denied", action)
	case errors.Is(err, ErrUnavailable):
		return fmt.Sprintf("Could not %s sync: the file is not reachable", action)
	default:
		return fmt.Sprintf("Could not %s sync", action)
	}
}
