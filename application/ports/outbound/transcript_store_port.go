package outbound

import (
	"context"
	"io"
)

// TranscriptStorePort reads and writes transcript objects in the object
// store. Store writes under the configured bucket and returns the object's
// public location URL; Fetch reads from whichever bucket the caller names,
// since file URLs in queue messages carry their own bucket.
type TranscriptStorePort interface {
	Fetch(ctx context.Context, bucket string, key string) ([]byte, error)
	Store(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error)
}
