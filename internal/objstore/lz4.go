package objstore

import (
	"bytes"
	"context"
	"io"

	"github.com/pierrec/lz4/v4"
)

type compressedStore struct{ Store }

// Compressed wraps s so objects are lz4-framed at rest.
func Compressed(s Store) Store { return &compressedStore{Store: s} }

func (c *compressedStore) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) error {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := io.Copy(zw, r); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return c.Store.Put(ctx, key, &buf, int64(buf.Len()), contentType)
}

func (c *compressedStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := c.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &lz4ReadCloser{Reader: lz4.NewReader(rc), under: rc}, nil
}

type lz4ReadCloser struct {
	*lz4.Reader
	under io.Closer
}

func (r *lz4ReadCloser) Close() error { return r.under.Close() }
