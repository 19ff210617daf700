// Package storage implements the object store that holds uploaded audio.
// Objects are addressed by a "{userID}/{filename}" path inside one bucket.
package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
)

// ObjectStore provides the object storage operations used by the recording workflows.
type ObjectStore interface {
	// Put writes size bytes from r to path, tagged with contentType.
	Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error

	// Get copies the object at path to w. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, path string, w io.Writer) error

	// Remove deletes the object at path. Removing a missing object is not an error.
	Remove(ctx context.Context, path string) error

	// PublicURL returns the publicly resolvable URL for path.
	PublicURL(path string) string

	// Check verifies the store is reachable and the bucket exists.
	Check(ctx context.Context) error
}

// publicURL joins base, bucket and object path with single slashes. Bucket
// and every path segment are escaped so the URL path decodes back to the key.
// A bare scheme base such as "memory://" is kept as is.
func publicURL(base, bucket, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	prefix := base
	if !strings.HasSuffix(prefix, "://") {
		prefix = strings.TrimRight(prefix, "/") + "/"
	}
	return prefix + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
