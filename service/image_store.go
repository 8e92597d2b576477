package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fnp-marketplace/logger"
)

// Image store kinds, as configured by IMAGE_STORE
const (
	StoreLocal = "local"
	StoreDrive = "drive"
	StoreMinio = "minio"
)

// ImageStore hosts optimized images and hands out their public URL
type ImageStore interface {
	// Put stores data under name and returns the object key and public URL.
	// The key is what Delete expects; stores that assign their own ids return those.
	Put(ctx context.Context, name string, data []byte, contentType string) (key, url string, err error)
	Delete(ctx context.Context, key string) error
	Kind() string
}

// LocalImageStore writes images to a directory the router serves under /images/.
// It is the development default.
type LocalImageStore struct {
	dir     string
	baseURL string
}

// NewLocalImageStore ensures dir exists
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalImageStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the directory the images are written to
func (s *LocalImageStore) Dir() string {
	return s.dir
}

func (s *LocalImageStore) path(key string) (string, error) {
	clean := filepath.Base(key)
	if clean != key || clean == "." || clean == ".." {
		return "", fmt.Errorf("invalid image key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *LocalImageStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, string, error) {
	p, err := s.path(name)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write image: %w", err)
	}
	logger.Log.Infof("✓ Image stored: %s", p)
	return name, s.baseURL + "/images/" + name, nil
}

func (s *LocalImageStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

func (s *LocalImageStore) Kind() string { return StoreLocal }

var _ ImageStore = (*LocalImageStore)(nil)
