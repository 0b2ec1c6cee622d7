package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// cleanName rejects path traversal in dataset names
func cleanName(name string) (string, error) {
	cleaned := filepath.Clean(name)
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid dataset name: %s", name)
	}
	return cleaned, nil
}

// Upload stores a dataset file locally
func (s *LocalStorage) Upload(ctx context.Context, name string, data io.Reader) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.basePath, cleaned)

	// Create directory structure
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Create file
	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// Copy data to file
	_, err = io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Clean up on error
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download retrieves a dataset file from local storage
func (s *LocalStorage) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.basePath, cleaned))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("dataset not found: %s", name)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a dataset file from local storage
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.basePath, cleaned))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
