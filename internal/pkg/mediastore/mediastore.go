// Package mediastore persists uploaded post images on local disk or S3.
package mediastore

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	appcfg "github.com/blogicum/core/internal/config"
)

// Store saves uploaded media and returns the public URL to reference it by.
type Store interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// New picks the S3 backend when a bucket is configured, local disk otherwise.
func New(cfg appcfg.MediaConfig) (Store, error) {
	if strings.TrimSpace(cfg.S3.Bucket) != "" {
		return newS3Store(cfg.S3)
	}
	return &localStore{dir: cfg.Dir}, nil
}

// localStore writes under the media dir; files are served at /media/.
type localStore struct {
	dir string
}

func (s *localStore) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	key = normalizeKey(key)
	if key == "" {
		return "", fmt.Errorf("invalid media key")
	}

	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return "/media/" + key, nil
}

func normalizeKey(key string) string {
	key = path.Clean(strings.TrimLeft(strings.TrimSpace(key), "/"))
	if key == "." || key == ".." || strings.HasPrefix(key, "../") {
		return ""
	}
	return key
}
