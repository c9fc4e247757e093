package mock

import "github.com/fwojciec/pagesense"

var _ pagesense.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagesense.Extractor.
type Extractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}
