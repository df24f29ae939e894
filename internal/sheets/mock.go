package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/pocketbook/internal/service"
)

// MockWriter records reports instead of sending them. It implements
// service.ReportWriter.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, report *service.Report) error
	LastReport     *service.Report
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error  error
	Report *service.Report
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements service.ReportWriter.
func (m *MockWriter) Write(ctx context.Context, report *service.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastReport = report

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, report)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Report: report,
		Error:  err,
	})

	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError makes every later Write return err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, *service.Report) error {
		return err
	}
}
