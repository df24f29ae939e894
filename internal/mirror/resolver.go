package mirror

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"cloud.google.com/go/storage"

	"github.com/Veraticus/pocketbook/internal/config"
)

// Resolver opens handles by URI scheme: a plain path or file:// URL yields a
// FileTarget, gs:// a GCSTarget. The Cloud Storage client is created on
// first use with Application Default Credentials.
type Resolver struct {
	client *storage.Client
	mu     sync.Mutex
}

// NewResolver returns a Resolver. client may be nil.
func NewResolver(client *storage.Client) *Resolver {
	return &Resolver{client: client}
}

// Open implements Opener.
func (r *Resolver) Open(ctx context.Context, h Handle) (Target, error) {
	uri := strings.TrimSpace(h.URI)
	switch {
	case uri == "":
		return nil, fmt.Errorf("%w: empty sync uri", ErrUnavailable)
	case strings.HasPrefix(uri, "gs://"):
		bucket, object, err := parseGCSURI(uri)
		if err != nil {
			return nil, err
		}
		client, err := r.storageClient(ctx)
		if err != nil {
			return nil, err
		}
		return NewGCSTarget(client, bucket, object), nil
	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid file URI %q: %w", uri, err)
		}
		return NewFileTarget(u.Path), nil
	case strings.Contains(uri, "://"):
		return nil, fmt.Errorf("%w: unsupported sync uri %q", ErrUnavailable, uri)
	default:
		return NewFileTarget(config.ExpandPath(uri)), nil
	}
}

// Close releases the Cloud Storage client if one was created.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

func (r *Resolver) storageClient(ctx context.Context) (*storage.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create storage client: %w", ErrUnavailable, err)
	}
	r.client = client
	return client, nil
}
