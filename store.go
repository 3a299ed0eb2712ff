package pagecap

import (
	"context"
	"time"
)

// ArtifactStore persists capture artifacts.
type ArtifactStore interface {
	// WriteText writes content to path, creating parent directories as
	// needed. Creation is idempotent; an existing directory is not an
	// error. Any filesystem failure is an EIO-coded error.
	WriteText(ctx context.Context, path string, content string) error
}

// CaptureRecord is one journal row describing a successful capture.
type CaptureRecord struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	FilePath    string    `json:"filePath"`
	ContentHash string    `json:"contentHash"`
	Chars       int       `json:"chars"`
	CapturedAt  time.Time `json:"capturedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *CaptureRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "capture source URL required")
	}
	if r.FilePath == "" {
		return Errorf(EINVALID, "capture file path required")
	}
	return nil
}

// CaptureFilter represents a filter for FindCaptures.
type CaptureFilter struct {
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CaptureService records and queries the capture journal.
type CaptureService interface {
	// RecordCapture appends a journal row. The ID, content hash and
	// capture time are assigned by the implementation.
	RecordCapture(ctx context.Context, rec *CaptureRecord, content string) error

	// FindCaptures retrieves journal rows matching the filter,
	// newest first.
	FindCaptures(ctx context.Context, filter CaptureFilter) ([]*CaptureRecord, error)
}
