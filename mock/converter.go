package mock

import "github.com/pagecap/pagecap"

var _ pagecap.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagecap.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
