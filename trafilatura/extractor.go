// Package trafilatura provides heuristic content extraction as an
// alternative to selector-based extraction.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/pagecap/pagecap"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagecap.Extractor at compile time.
var _ pagecap.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Unlike the selector-based extractor it needs no per-site configuration;
// it trades the ordered first-match-wins semantics for statistical
// boilerplate detection.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pagecap.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagecap.Errorf(pagecap.EPARSE, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, pagecap.Errorf(pagecap.EPARSE, "extracting content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, pagecap.Errorf(pagecap.EPARSE, "rendering content: %v", err)
		}
	}

	return &pagecap.ExtractResult{
		ContentHTML:     contentHTML,
		MetaDescription: strings.TrimSpace(result.Metadata.Description),
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
