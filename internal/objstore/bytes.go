package objstore

import (
	"bytes"
	"context"
	"errors"
	"io"

	dom "github.com/gdps-go/gdps/internal/ports"
)

// Blobs adapts a Store to the byte-slice interface the blob repositories use.
type Blobs struct{ Store Store }

var _ dom.BlobStore = Blobs{}

func (b Blobs) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := b.Store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, dom.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (b Blobs) PutBytes(ctx context.Context, key string, data []byte) error {
	return b.Store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/octet-stream")
}

func (b Blobs) Delete(ctx context.Context, key string) error {
	return b.Store.Delete(ctx, key)
}
