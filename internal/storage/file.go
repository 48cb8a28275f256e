package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FileStore persists each key as a small file under a directory, the
// client-side analogue of browser localStorage.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are fixed identifiers; reject anything that could escape the dir.
	clean := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, clean)
}

// Get returns the stored value for key. Read failures other than absence are
// logged and reported as absent; callers treat missing data as an empty
// baseline, never an error.
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read storage key",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return "", false
	}
	return string(data), true
}

// Set writes the value synchronously.
func (s *FileStore) Set(key, value string) error {
	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("failed to write storage key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key; absence is not an error.
func (s *FileStore) Remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove storage key %q: %w", key, err)
	}
	return nil
}
