// Package images provides cover image storage and placeholder hashing.
package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage manages image filesystem operations.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates a new Storage instance for uploaded book covers.
// basePath should be the data directory; covers are stored in
// {basePath}/portadas/.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	storagePath := filepath.Join(basePath, "portadas")

	// Create directory if it doesn't exist.
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create portadas directory: %w", err)
	}

	return &Storage{
		basePath: storagePath,
	}, nil
}

// Save stores image data under the given filename.
func (s *Storage) Save(filename string, imgData []byte) error {
	if err := validFilename(filename); err != nil {
		return err
	}
	if len(imgData) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write file with appropriate permissions.
	if err := os.WriteFile(s.Path(filename), imgData, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}

	return nil
}

// Get retrieves image data for a filename.
func (s *Storage) Get(filename string) ([]byte, error) {
	if err := validFilename(filename); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %s: %w", filename, err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return data, nil
}

// Exists checks if an image exists for a filename.
func (s *Storage) Exists(filename string) bool {
	if validFilename(filename) != nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(filename))
	return err == nil
}

// Delete removes a stored image. Deleting a missing image is not an error.
func (s *Storage) Delete(filename string) error {
	if err := validFilename(filename); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// Path returns the full filesystem path for a stored image.
func (s *Storage) Path(filename string) string {
	return filepath.Join(s.basePath, filename)
}

// validFilename rejects empty names and path traversal.
func validFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "/") || strings.Contains(filename, "\\") || filename != filepath.Base(filename) {
		return fmt.Errorf("invalid filename: %s", filename)
	}
	return nil
}
