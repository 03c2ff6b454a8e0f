package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storefront-service/pkg/config"

	"github.com/google/uuid"
)

// ErrFileTooLarge is returned when an upload exceeds the configured size cap
type ErrFileTooLarge struct {
	Size int64
	Max  int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file size %d exceeds maximum of %d bytes", e.Size, e.Max)
}

// ImageStore persists uploaded product images on the local filesystem
type ImageStore struct {
	dir     string
	maxSize int64
}

// NewImageStore creates the upload directory if needed
func NewImageStore(cfg *config.UploadConfig) (*ImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{dir: cfg.Dir, maxSize: cfg.MaxSizeBytes}, nil
}

// Save writes the uploaded content under a generated name and returns that name.
// The declared size is checked against the cap before anything touches disk.
func (s *ImageStore) Save(src io.Reader, originalName string, size int64) (string, error) {
	if size > s.maxSize {
		return "", &ErrFileTooLarge{Size: size, Max: s.maxSize}
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	// LimitReader guards against clients lying about Content-Length
	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", &ErrFileTooLarge{Size: written, Max: s.maxSize}
	}

	return name, nil
}

// Remove deletes a stored image, ignoring files already gone
func (s *ImageStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
