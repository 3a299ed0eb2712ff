// Package fs provides file-based persistence for capture artifacts.
package fs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/pagecap/pagecap"
)

// writeBufferSize is the buffer used for artifact writes.
const writeBufferSize = 8192

// Ensure Store implements pagecap.ArtifactStore at compile time.
var _ pagecap.ArtifactStore = (*Store)(nil)

// Store writes capture artifacts to the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// WriteText writes content to path, creating parent directories as
// needed. Directory creation is idempotent. Any filesystem failure is
// returned as an EIO-coded error.
func (s *Store) WriteText(ctx context.Context, path string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pagecap.Errorf(pagecap.EIO, "creating directory: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return pagecap.Errorf(pagecap.EIO, "creating file: %v", err)
	}

	w := bufio.NewWriterSize(f, writeBufferSize)
	if _, err := w.WriteString(content); err != nil {
		f.Close()
		return pagecap.Errorf(pagecap.EIO, "writing file: %v", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return pagecap.Errorf(pagecap.EIO, "flushing file: %v", err)
	}
	if err := f.Close(); err != nil {
		return pagecap.Errorf(pagecap.EIO, "closing file: %v", err)
	}

	return nil
}
