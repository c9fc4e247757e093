package mock

import "github.com/fwojciec/pagesense"

var _ pagesense.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagesense.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
