package mirror

import (
	"context"
	"sync"
)

type fakeTarget struct {
	permissionErr error
	readErr       error
	writeErr      error
	name          string
	content       []byte
	writes        int
	permissionReq int
	mu            sync.Mutex
}

func newFakeTarget(name, content string) *fakeTarget {
	return &fakeTarget{name: name, content: []byte(content)}
}

func (f *fakeTarget) RequestPermission(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.permissionReq++
	return f.permissionErr
}

func (f *fakeTarget) Read(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append([]byte(nil), f.content...), nil
}

func (f *fakeTarget) Write(_ context.Context, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.content = append([]byte(nil), data...)
	f.writes++
	return nil
}

func (f *fakeTarget) String() string { return f.name }

func (f *fakeTarget) setWriteErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErr = err
}

func (f *fakeTarget) snapshot() (string, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.content), f.writes, f.permissionReq
}

type fakeOpener struct {
	targets map[string]*fakeTarget
}

func (o fakeOpener) Open(_ context.Context, h Handle) (Target, error) {
	t, ok := o.targets[h.URI]
	if !ok {
		return nil, ErrUnavailable
	}
	return t, nil
}

func pickURI(uri string) Picker {
	return func(context.Context) (Handle, error) {
		return Handle{URI: uri}, nil
	}
}
