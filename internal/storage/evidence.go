package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// EvidenceStore holds payment proof blobs. The core only ever handles the
// opaque key; a production deployment would back this with S3 or similar.
type EvidenceStore interface {
	// NewKey mints an opaque reference for a fresh blob.
	NewKey() string
	Save(key string, r io.Reader) error
	Open(key string) (io.ReadCloser, error)
	Exists(key string) (bool, error)
}

// LocalEvidenceStore keeps blobs on the local filesystem for development and
// testing.
type LocalEvidenceStore struct {
	dir string
}

func NewLocalEvidenceStore(dir string) (*LocalEvidenceStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create evidence directory: %w", err)
	}
	return &LocalEvidenceStore{dir: dir}, nil
}

func (s *LocalEvidenceStore) NewKey() string {
	return uuid.New().String()
}

func (s *LocalEvidenceStore) Save(key string, r io.Reader) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create evidence file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write evidence file: %w", err)
	}
	return nil
}

func (s *LocalEvidenceStore) Open(key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalEvidenceStore) Exists(key string) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// path rejects keys that would escape the storage directory.
func (s *LocalEvidenceStore) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "/") || strings.Contains(key, "\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid evidence key %q", key)
	}
	return filepath.Join(s.dir, key), nil
}
