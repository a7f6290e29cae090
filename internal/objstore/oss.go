package objstore

import (
	"context"
	"errors"
	"io"
	"net/http"

	oss "github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossStore struct{ bk *oss.Bucket }

func OpenOSS(_ context.Context, c Config) (Store, error) {
	cli, err := oss.New(c.Endpoint, c.AccessKey, c.SecretKey)
	if err != nil {
		return nil, err
	}
	bk, err := cli.Bucket(c.Bucket)
	if err != nil {
		return nil, err
	}
	return &ossStore{bk: bk}, nil
}

func (s *ossStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	opts := []oss.Option{}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	return s.bk.PutObject(sanitizeKey(key), r, opts...)
}

func (s *ossStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.bk.GetObject(sanitizeKey(key))
	if err != nil {
		var se oss.ServiceError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rc, nil
}

func (s *ossStore) Exists(_ context.Context, key string) (bool, error) {
	return s.bk.IsObjectExist(sanitizeKey(key))
}

func (s *ossStore) Delete(_ context.Context, key string) error {
	return s.bk.DeleteObject(sanitizeKey(key))
}
