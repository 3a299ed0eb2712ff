// Package goquery provides CSS-selector based content extraction.
package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagecap/pagecap"
)

// Ensure Extractor implements pagecap.Extractor at compile time.
var _ pagecap.Extractor = (*Extractor)(nil)

// Extractor extracts main content from HTML using two configurable
// selector lists: a block-list of boilerplate selectors that are removed
// unconditionally, and an ordered priority list of main-content selectors
// where the first match wins.
type Extractor struct {
	strip  []string
	main   []string
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStripSelectors replaces the boilerplate block-list.
func WithStripSelectors(selectors []string) Option {
	return func(e *Extractor) {
		if len(selectors) > 0 {
			e.strip = selectors
		}
	}
}

// WithMainSelectors replaces the ordered main-content selector list.
func WithMainSelectors(selectors []string) Option {
	return func(e *Extractor) {
		if len(selectors) > 0 {
			e.main = selectors
		}
	}
}

// WithLogger sets the logger used for degradation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor with the default selector lists.
func NewExtractor(opts ...Option) *Extractor {
	defaults := pagecap.DefaultConfig()
	e := &Extractor{
		strip:  defaults.StripSelectors,
		main:   defaults.MainSelectors,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pagecap.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagecap.Errorf(pagecap.EPARSE, "parsing markup: %v", err)
	}

	meta := metaDescription(doc)

	// Boilerplate removal is destructive and unconditional.
	for _, sel := range e.strip {
		doc.Find(sel).Remove()
	}

	// First matching main-content selector wins; stop scanning.
	var content *goquery.Selection
	for _, sel := range e.main {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			content = s
			break
		}
	}

	result := &pagecap.ExtractResult{MetaDescription: meta}

	if content != nil {
		html, err := goquery.OuterHtml(content)
		if err != nil {
			return nil, pagecap.Errorf(pagecap.EPARSE, "rendering content: %v", err)
		}
		result.ContentHTML = html
		return result, nil
	}

	// No selector matched: fall back to the entire pruned document.
	e.logger.Warn("no main content selector matched, using full document")
	html, err := doc.Html()
	if err != nil {
		return nil, pagecap.Errorf(pagecap.EPARSE, "rendering document: %v", err)
	}
	result.ContentHTML = html
	result.Degraded = true
	return result, nil
}

// metaDescription returns the page description from the standard meta
// field, falling back to the OpenGraph description.
func metaDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc := strings.TrimSpace(content); desc != "" {
			return desc
		}
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}
