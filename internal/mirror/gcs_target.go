package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

const gcsWriteTimeout = 2 * time.Minute

// GCSTarget mirrors to a Cloud Storage object.
type GCSTarget struct {
	object *storage.ObjectHandle
	bucket string
	name   string
}

// NewGCSTarget returns a target for bucket/name using client.
func NewGCSTarget(client *storage.Client, bucket, name string) *GCSTarget {
	return &GCSTarget{
		object: client.Bucket(bucket).Object(name),
		bucket: bucket,
		name:   name,
	}
}

// RequestPermission looks up the object's attributes. An object that does not
// exist yet is fine; it is created on the first write.
func (g *GCSTarget) RequestPermission(ctx context.Context) error {
	_, err := g.object.Attrs(ctx)
	if err == nil || errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return g.classify("check", err)
}

// Read downloads the object. A missing object reads as empty.
func (g *GCSTarget) Read(ctx context.Context) ([]byte, error) {
	r, err := g.object.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, g.classify("open reader for", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, g.classify("read", err)
	}
	return data, nil
}

// Write uploads data over the object.
func (g *GCSTarget) Write(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, gcsWriteTimeout)
	defer cancel()

	w := g.object.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return g.classify("upload", err)
	}
	if err := w.Close(); err != nil {
		return g.classify("finalize upload of", err)
	}
	return nil
}

func (g *GCSTarget) String() string {
	return "gs://" + g.bucket + "/" + g.name
}

func (g *GCSTarget) classify(op string, err error) error {
	return fmt.Errorf("failed to %s %s: %w", op, g, classifyGCSError(err))
}

// classifyGCSError maps API status codes onto the target errors.
func classifyGCSError(err error) error {
	if errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}
	return err
}

// parseGCSURI splits gs://bucket/object.
func parseGCSURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}
	return parts[0], parts[1], nil
}
