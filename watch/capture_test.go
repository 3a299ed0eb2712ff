package watch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagecap/pagecap"
	"github.com/pagecap/pagecap/fs"
	pagequery "github.com/pagecap/pagecap/goquery"
	"github.com/pagecap/pagecap/htmltomarkdown"
	"github.com/pagecap/pagecap/mock"
	"github.com/pagecap/pagecap/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: One Capture
//
// The coordinator performs exactly one capture: resolve title, extract,
// convert, derive paths, persist, preview. Each step short-circuits on
// failure, so a failed capture never partially persists the artifact.

func TestCoordinator_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	c := &watch.Coordinator{
		Extractor:  pagequery.NewExtractor(),
		Converter:  htmltomarkdown.NewConverter(),
		Store:      fs.NewStore(),
		OutputRoot: dir,
	}

	snap := &pagecap.PageSnapshot{
		URL:        "https://Www.Example.com/foo?x=1",
		Title:      "Test Page",
		RawMarkup:  `<html><body><nav>skip</nav><main><p>Hello <b>World</b></p></main></body></html>`,
		ReadyState: pagecap.ReadyComplete,
	}

	report, err := c.Capture(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "example.com"), report.Path.Directory)
	assert.Equal(t, filepath.Join(dir, "example.com", "test-page.md"), report.Path.FilePath)

	data, err := os.ReadFile(report.Path.FilePath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Test Page")
	assert.Contains(t, content, "*Source: https://Www.Example.com/foo?x=1*")
	assert.Contains(t, content, "Hello **World**")
	assert.NotContains(t, content, "skip")
}

func TestCoordinator_ExtractionFailureWritesNothing(t *testing.T) {
	t.Parallel()

	writes := 0
	c := &watch.Coordinator{
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*pagecap.ExtractResult, error) {
				return nil, pagecap.Errorf(pagecap.EPARSE, "bad markup")
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		},
		Store: &mock.ArtifactStore{
			WriteTextFn: func(_ context.Context, path, content string) error {
				writes++
				return nil
			},
		},
	}

	_, err := c.Capture(context.Background(), &pagecap.PageSnapshot{URL: "https://example.com"})

	require.Error(t, err)
	assert.Equal(t, pagecap.EPARSE, pagecap.ErrorCode(err))
	assert.Zero(t, writes)
}

func TestCoordinator_PersistenceFailureIsIOCoded(t *testing.T) {
	t.Parallel()

	c := &watch.Coordinator{
		Extractor: passthroughExtractor(),
		Converter: passthroughConverter(),
		Store: &mock.ArtifactStore{
			WriteTextFn: func(_ context.Context, path, content string) error {
				return pagecap.Errorf(pagecap.EIO, "disk full")
			},
		},
	}

	_, err := c.Capture(context.Background(), &pagecap.PageSnapshot{
		URL:       "https://example.com/a",
		RawMarkup: "<p>x</p>",
	})

	require.Error(t, err)
	assert.Equal(t, pagecap.EIO, pagecap.ErrorCode(err))
}

func TestCoordinator_DebugHTMLArtifact(t *testing.T) {
	t.Parallel()

	written := make(map[string]string)
	c := &watch.Coordinator{
		Extractor: passthroughExtractor(),
		Converter: passthroughConverter(),
		Store: &mock.ArtifactStore{
			WriteTextFn: func(_ context.Context, path, content string) error {
				written[path] = content
				return nil
			},
		},
		OutputRoot: "out",
		DebugHTML:  true,
	}

	raw := "<main>raw markup</main>"
	report, err := c.Capture(context.Background(), &pagecap.PageSnapshot{
		URL:       "https://example.com/a",
		Title:     "A Page",
		RawMarkup: raw,
	})
	require.NoError(t, err)

	require.NotEmpty(t, report.DebugPath)
	assert.Equal(t, filepath.Join("out", "example.com", "debug-a-page.html"), report.DebugPath)
	assert.Equal(t, raw, written[report.DebugPath])
}

func TestCoordinator_JournalFailureDoesNotFailCapture(t *testing.T) {
	t.Parallel()

	c := &watch.Coordinator{
		Extractor: passthroughExtractor(),
		Converter: passthroughConverter(),
		Store: &mock.ArtifactStore{
			WriteTextFn: func(_ context.Context, path, content string) error { return nil },
		},
		Journal: &mock.CaptureService{
			RecordCaptureFn: func(_ context.Context, rec *pagecap.CaptureRecord, content string) error {
				return pagecap.Errorf(pagecap.EIO, "journal locked")
			},
		},
	}

	_, err := c.Capture(context.Background(), &pagecap.PageSnapshot{
		URL:       "https://example.com/a",
		RawMarkup: "<p>x</p>",
	})
	assert.NoError(t, err)
}

func TestCoordinator_JournalRecordsCapture(t *testing.T) {
	t.Parallel()

	var got *pagecap.CaptureRecord
	c := &watch.Coordinator{
		Extractor: passthroughExtractor(),
		Converter: passthroughConverter(),
		Store: &mock.ArtifactStore{
			WriteTextFn: func(_ context.Context, path, content string) error { return nil },
		},
		Journal: &mock.CaptureService{
			RecordCaptureFn: func(_ context.Context, rec *pagecap.CaptureRecord, content string) error {
				got = rec
				return nil
			},
		},
		OutputRoot: "out",
	}

	_, err := c.Capture(context.Background(), &pagecap.PageSnapshot{
		URL:       "https://example.com/a",
		Title:     "A Page",
		RawMarkup: "<p>x</p>",
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "https://example.com/a", got.SourceURL)
	assert.Equal(t, "A Page", got.Title)
	assert.Equal(t, filepath.Join("out", "example.com", "a-page.md"), got.FilePath)
}

func TestCoordinator_Preview(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	longLine := strings.Repeat("x", 90)
	manyLines := strings.Repeat("line\n", 30)

	c := &watch.Coordinator{
		Extractor: passthroughExtractor(),
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return longLine + "\n" + manyLines, nil
			},
		},
		Store: &mock.ArtifactStore{
			WriteTextFn: func(_ context.Context, path, content string) error { return nil },
		},
		Stdout:       &stdout,
		PreviewLines: 12, // header block plus the first body lines
		PreviewWidth: 70,
	}

	_, err := c.Capture(context.Background(), &pagecap.PageSnapshot{
		URL:       "https://example.com/a",
		Title:     "A Page",
		RawMarkup: "<p>x</p>",
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Saved: ")
	assert.Contains(t, out, "CONTENT PREVIEW:")
	assert.Contains(t, out, "...and more")

	// Long lines are clipped to the preview width with an ellipsis.
	assert.Contains(t, out, strings.Repeat("x", 70)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 71))
}

func TestCoordinator_ResolvesTitleFromURL(t *testing.T) {
	t.Parallel()

	var gotPath string
	c := &watch.Coordinator{
		Extractor: passthroughExtractor(),
		Converter: passthroughConverter(),
		Store: &mock.ArtifactStore{
			WriteTextFn: func(_ context.Context, path, content string) error {
				gotPath = path
				return nil
			},
		},
		OutputRoot: "out",
	}

	report, err := c.Capture(context.Background(), &pagecap.PageSnapshot{
		URL:       "https://example.com/getting-started",
		Title:     "", // browser gave no title
		RawMarkup: "<p>x</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, "getting started", report.Document.Title)
	assert.Equal(t, filepath.Join("out", "example.com", "getting-started.md"), gotPath)
}

func passthroughExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html string) (*pagecap.ExtractResult, error) {
			return &pagecap.ExtractResult{ContentHTML: html}, nil
		},
	}
}

func passthroughConverter() *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(html string) (string, error) { return html, nil },
	}
}
