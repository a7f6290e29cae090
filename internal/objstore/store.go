// Package objstore stores large blobs outside the relational store.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the key holds no object.
var ErrNotFound = errors.New("objstore: object not found")

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Driver         string        `json:",default=file,options=file|memory|s3|oss|cos"`
	Bucket         string        `json:",optional"`
	Region         string        `json:",optional"`
	Endpoint       string        `json:",optional"`
	AccessKey      string        `json:",optional"`
	SecretKey      string        `json:",optional"`
	ForcePathStyle bool          `json:",optional"`
	BaseDir        string        `json:",default=data/blobs"`
	Compress       bool          `json:",optional"`
	Timeout        time.Duration `json:",default=30s"`
}

func Validate(c Config) error {
	switch strings.ToLower(c.Driver) {
	case "s3":
		if c.Bucket == "" {
			return errors.New("bucket required for s3 driver")
		}
		// credentials via env (AWS_ACCESS_KEY_ID/SECRET) or IAM; we don't enforce here
	case "oss":
		if c.Bucket == "" {
			return errors.New("bucket required for oss driver")
		}
		if c.Endpoint == "" {
			return errors.New("endpoint required for oss driver")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return errors.New("access_key/secret_key required for oss driver")
		}
	case "cos":
		if c.Bucket == "" {
			return errors.New("bucket required for cos driver")
		}
		if c.Region == "" && c.Endpoint == "" {
			return errors.New("region or endpoint required for cos driver")
		}
		if c.AccessKey == "" || c.SecretKey == "" {
			return errors.New("access_key/secret_key required for cos driver")
		}
	case "file":
		if c.BaseDir == "" {
			return errors.New("base_dir required for file driver")
		}
		if err := os.MkdirAll(c.BaseDir, 0o755); err != nil {
			return fmt.Errorf("ensure base_dir: %w", err)
		}
	case "memory":
	case "":
		return errors.New("storage driver not set")
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Driver)
	}
	return nil
}

// Open validates c and opens the driver it names, wrapped with lz4
// compression when c.Compress is set.
func Open(ctx context.Context, c Config) (Store, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	var (
		s   Store
		err error
	)
	switch strings.ToLower(c.Driver) {
	case "s3":
		s, err = OpenS3(ctx, c)
	case "oss":
		s, err = OpenOSS(ctx, c)
	case "cos":
		s, err = OpenCOS(ctx, c)
	case "memory":
		s = NewMemory()
	default:
		s, err = OpenFile(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	if c.Compress {
		s = Compressed(s)
	}
	return s, nil
}

// sanitizeKey prevents path traversal.
func sanitizeKey(key string) string {
	key = filepath.ToSlash(key)
	key = strings.TrimLeft(key, "/")
	parts := strings.Split(key, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "/")
}
