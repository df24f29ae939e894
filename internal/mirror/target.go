package mirror

import (
	"context"
	"errors"
)

// Target errors. Implementations wrap these so callers can use errors.Is.
var (
	// ErrPermissionDenied means read-write access was refused or revoked.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrCanceled means the user backed out of choosing a target.
	ErrCanceled = errors.New("selection canceled")
	// ErrUnavailable means the target cannot be reached or does not exist.
	ErrUnavailable = errors.New("target unavailable")
)

// Target is an external location holding the mirrored list.
type Target interface {
	// RequestPermission asks for read-write access. It must succeed before
	// Read or Write are used.
	RequestPermission(ctx context.Context) error
	// Read returns the current content. A target with no content yet
	// returns an empty slice and no error.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the whole content.
	Write(ctx context.Context, data []byte) error
	String() string
}

// Opener turns a recorded Handle into a Target.
type Opener interface {
	Open(ctx context.Context, h Handle) (Target, error)
}

// Picker asks the user to choose a target. It returns ErrCanceled when the
// user declines.
type Picker func(ctx context.Context) (Handle, error)
