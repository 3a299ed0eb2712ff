package pagecap

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// ContentHTML is the main content as clean HTML.
	// Boilerplate (scripts, nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// MetaDescription is the page's description meta field, falling back
	// to the OpenGraph description. Empty when neither is present.
	MetaDescription string

	// Degraded reports that no main-content selector matched and the
	// whole pruned document was used instead.
	Degraded bool
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Fails with EPARSE only when the markup cannot be parsed as a DOM
	// tree at all; malformed-but-parseable input degrades gracefully.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Links and images are preserved as inline references.
	Convert(html string) (string, error)
}

// ExtractedDocument is the normalized result of one capture. It is
// immutable once built and owned by the capture that created it until
// handed to persistence.
type ExtractedDocument struct {
	Title           string
	SourceURL       string
	BodyText        string // normalized markdown
	MetaDescription string // empty when absent
	CapturedAt      time.Time
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// NormalizeBody collapses any run of three or more consecutive newlines to
// exactly one blank line and trims leading/trailing whitespace.
func NormalizeBody(markdown string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(markdown, "\n\n"))
}

// FormatArtifact renders the persisted artifact: a fixed header block
// (title, source URL, capture timestamp, character count, optional meta
// description, horizontal separator) followed by the document body.
//
// The field order is a format contract; downstream tooling parses it.
func FormatArtifact(doc *ExtractedDocument) string {
	parts := []string{
		"# " + doc.Title,
		"",
		"*Source: " + doc.SourceURL + "*",
		"",
		"*Scraped on: " + doc.CapturedAt.Format("2006-01-02 15:04:05") + "*",
		"",
		"*Content length: " + strconv.Itoa(utf8.RuneCountInString(doc.BodyText)) + " characters*",
		"",
	}

	if doc.MetaDescription != "" {
		parts = append(parts, "*Meta description: "+doc.MetaDescription+"*", "")
	}

	parts = append(parts, "---", "", "")

	return strings.Join(parts, "\n") + doc.BodyText
}

// CaptureReport describes one successful capture.
type CaptureReport struct {
	Document *ExtractedDocument
	Path     CapturePath

	// Bytes is the size of the persisted markdown artifact.
	Bytes int

	// DebugPath is the raw-markup sibling artifact, when written.
	DebugPath string
}

// Capturer performs exactly one capture of a page snapshot: extract,
// convert, derive paths, persist. Implementations never partially persist
// the markdown artifact and never mutate watch state; the caller records
// capture timestamps only after Capture returns success.
type Capturer interface {
	Capture(ctx context.Context, snap *PageSnapshot) (*CaptureReport, error)
}
