package storage

import (
	"context"
	"io"
)

// Object is one file to write. CacheControl is stored with the object and
// returned to readers of the public URL.
type Object struct {
	Key          string
	ContentType  string
	CacheControl string
	Body         io.Reader
}

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// ObjectStore writes objects to a bucket that is served from a public base URL.
type ObjectStore interface {
	Put(ctx context.Context, obj Object) (*UploadResult, error)
	URL(key string) string
}
