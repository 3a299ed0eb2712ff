package mock

import "github.com/pagecap/pagecap"

var _ pagecap.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagecap.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagecap.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagecap.ExtractResult, error) {
	return e.ExtractFn(html)
}
