package mock

import (
	"context"

	"github.com/pagecap/pagecap"
)

var _ pagecap.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of pagecap.ArtifactStore.
type ArtifactStore struct {
	WriteTextFn func(ctx context.Context, path string, content string) error
}

func (s *ArtifactStore) WriteText(ctx context.Context, path string, content string) error {
	return s.WriteTextFn(ctx, path, content)
}

var _ pagecap.CaptureService = (*CaptureService)(nil)

// CaptureService is a mock implementation of pagecap.CaptureService.
type CaptureService struct {
	RecordCaptureFn func(ctx context.Context, rec *pagecap.CaptureRecord, content string) error
	FindCapturesFn  func(ctx context.Context, filter pagecap.CaptureFilter) ([]*pagecap.CaptureRecord, error)
}

func (s *CaptureService) RecordCapture(ctx context.Context, rec *pagecap.CaptureRecord, content string) error {
	return s.RecordCaptureFn(ctx, rec, content)
}

func (s *CaptureService) FindCaptures(ctx context.Context, filter pagecap.CaptureFilter) ([]*pagecap.CaptureRecord, error) {
	return s.FindCapturesFn(ctx, filter)
}
