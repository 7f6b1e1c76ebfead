package port

import (
	"context"
	"io"
)

// ArchiveObject is a rendered document to be stored under Key.
type ArchiveObject struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// ArchivedObject describes where an ArchiveObject ended up.
type ArchivedObject struct {
	Key      string
	Location string
	ETag     string
}

// ObjectStorage stores rendered invoice documents in a single bucket.
type ObjectStorage interface {
	Put(ctx context.Context, obj ArchiveObject) (*ArchivedObject, error)
	Remove(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expirySeconds int64) (string, error)
}
