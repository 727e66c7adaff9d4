package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FSBlobSink is a filesystem-backed BlobSink, the default object-storage
// adapter for local/CLI runs in place of S3/GCS/MinIO — grounded on the
// key-prefix layout spec §6 requires, with PresignedGet returning a
// file:// URL since there is no signing authority for a local directory.
type FSBlobSink struct {
	root string
}

// NewFSBlobSink builds a sink rooted at dir, creating it if it doesn't
// already exist.
func NewFSBlobSink(dir string) (*FSBlobSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create blob root %s: %w", dir, err)
	}
	return &FSBlobSink{root: dir}, nil
}

func (s *FSBlobSink) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *FSBlobSink) Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	dest := s.path(key)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("store: create dir for %s: %w", key, err)
	}
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	// content type and metadata have no meaning on a bare filesystem and
	// are discarded; FSBlobSink is the only BlobSink in this package.
	return nil
}

func (s *FSBlobSink) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return body, nil
}

func (s *FSBlobSink) List(ctx context.Context, prefix string) ([]string, error) {
	base := s.path(prefix)
	var keys []string
	err := filepath.WalkDir(s.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasPrefix(p, base) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list prefix %s: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FSBlobSink) PresignedGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if _, err := os.Stat(s.path(key)); err != nil {
		return "", fmt.Errorf("store: presign %s: %w", key, err)
	}
	return "file://" + s.path(key), nil
}
