// Package preview manages transient local image previews. A preview ref is
// the client-side analog of a browser object URL: created when an image is
// ingested, shown to the user, and released exactly once when replaced,
// removed, or flushed. An unreleased ref is a resource leak.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Store creates and releases transient preview references.
type Store interface {
	// Create copies r into a new transient preview and returns its ref.
	Create(r io.Reader, name string) (string, error)
	// Release destroys a previously created ref. Releasing a ref twice, or a
	// ref Create never returned, is an error.
	Release(ref string) error
}

// FileStore keeps previews as files under a cache directory.
type FileStore struct {
	mu   sync.Mutex
	dir  string
	live map[string]struct{}
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	return &FileStore{dir: dir, live: make(map[string]struct{})}, nil
}

// Create writes a preview file and returns its path as the ref.
func (s *FileStore) Create(r io.Reader, name string) (string, error) {
	f, err := os.CreateTemp(s.dir, "preview-*"+filepath.Ext(name))
	if err != nil {
		return "", fmt.Errorf("create preview: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write preview: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close preview: %w", err)
	}

	s.mu.Lock()
	s.live[f.Name()] = struct{}{}
	s.mu.Unlock()
	return f.Name(), nil
}

// Release deletes the preview file behind ref.
func (s *FileStore) Release(ref string) error {
	s.mu.Lock()
	_, ok := s.live[ref]
	if ok {
		delete(s.live, ref)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("release of unknown preview ref %q", ref)
	}
	if err := os.Remove(ref); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove preview: %w", err)
	}
	return nil
}

// Live returns the number of refs created but not yet released.
func (s *FileStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
