package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pagecap/pagecap"
)

// Ensure Coordinator implements pagecap.Capturer at compile time.
var _ pagecap.Capturer = (*Coordinator)(nil)

// Coordinator performs one capture given a snapshot: title resolution,
// extraction, markdown conversion, path derivation, persistence, preview.
// It never mutates watch state; the watch loop records capture timestamps
// only after Capture returns success.
type Coordinator struct {
	Extractor pagecap.Extractor
	Converter pagecap.Converter
	Store     pagecap.ArtifactStore

	// Journal records successful captures when set. Journal failures
	// never fail a capture; they are logged only.
	Journal pagecap.CaptureService

	// OutputRoot is the directory artifacts are written under.
	OutputRoot string

	// DebugHTML also writes the raw markup as a sibling artifact.
	DebugHTML bool

	// MaxFileNameLength truncates sanitized file names. Zero means the
	// default.
	MaxFileNameLength int

	// PreviewLines and PreviewWidth bound the console preview. Zero
	// means the defaults.
	PreviewLines int
	PreviewWidth int

	// Stdout receives the user-facing preview. Defaults to io.Discard.
	Stdout io.Writer

	Logger *slog.Logger

	// Now returns the current time; swappable for tests.
	Now func() time.Time
}

// Capture captures the snapshot and returns a report of what was written.
func (c *Coordinator) Capture(ctx context.Context, snap *pagecap.PageSnapshot) (*pagecap.CaptureReport, error) {
	logger := c.logger()

	title := pagecap.ResolveTitle(snap.URL, snap.Title)
	logger.Info("processing page", "title", title, "bytes", len(snap.RawMarkup))

	result, err := c.Extractor.Extract(snap.RawMarkup)
	if err != nil {
		return nil, err
	}

	markdown, err := c.Converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, pagecap.Errorf(pagecap.EPARSE, "converting to markdown: %v", pagecap.ErrorMessage(err))
	}

	doc := &pagecap.ExtractedDocument{
		Title:           title,
		SourceURL:       snap.URL,
		BodyText:        pagecap.NormalizeBody(markdown),
		MetaDescription: result.MetaDescription,
		CapturedAt:      c.now(),
	}
	content := pagecap.FormatArtifact(doc)

	path := pagecap.DerivePath(c.OutputRoot, snap.URL, title, c.MaxFileNameLength)

	if err := c.Store.WriteText(ctx, path.FilePath, content); err != nil {
		return nil, err
	}

	report := &pagecap.CaptureReport{
		Document: doc,
		Path:     path,
		Bytes:    len(content),
	}

	if c.DebugHTML {
		debugPath := path.DebugFilePath()
		if err := c.Store.WriteText(ctx, debugPath, snap.RawMarkup); err != nil {
			logger.Warn("debug artifact write failed", "path", debugPath, "err", err)
		} else {
			report.DebugPath = debugPath
			fmt.Fprintf(c.stdout(), "Debug: %s\n", debugPath)
		}
	}

	if c.Journal != nil {
		rec := &pagecap.CaptureRecord{
			SourceURL: snap.URL,
			Title:     title,
			FilePath:  path.FilePath,
			Chars:     utf8.RuneCountInString(doc.BodyText),
		}
		if err := c.Journal.RecordCapture(ctx, rec, content); err != nil {
			logger.Warn("journal write failed", "url", snap.URL, "err", err)
		}
	}

	logger.Info("saved", "path", path.FilePath, "bytes", report.Bytes)
	c.showPreview(content, path.FilePath)

	return report, nil
}

// showPreview prints the first lines of the artifact, each clipped to the
// configured width.
func (c *Coordinator) showPreview(content, filename string) {
	stdout := c.stdout()

	previewLines := c.PreviewLines
	if previewLines <= 0 {
		previewLines = pagecap.DefaultPreviewLines
	}
	previewWidth := c.PreviewWidth
	if previewWidth <= 0 {
		previewWidth = pagecap.DefaultPreviewWidth
	}

	fmt.Fprintf(stdout, "Saved: %s (%d characters)\n", filename, utf8.RuneCountInString(content))

	lines := strings.Split(content, "\n")
	shown := lines
	if len(shown) > previewLines {
		shown = shown[:previewLines]
	}

	fmt.Fprintf(stdout, "\nCONTENT PREVIEW:\n")
	for i, line := range shown {
		if strings.TrimSpace(line) == "" {
			continue
		}
		preview := line
		if runes := []rune(line); len(runes) > previewWidth {
			preview = string(runes[:previewWidth]) + "..."
		}
		fmt.Fprintf(stdout, "   %2d| %s\n", i+1, preview)
	}
	if len(lines) > previewLines {
		fmt.Fprintln(stdout, "   ...and more")
	}
}

func (c *Coordinator) stdout() io.Writer {
	if c.Stdout == nil {
		return io.Discard
	}
	return c.Stdout
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Coordinator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
