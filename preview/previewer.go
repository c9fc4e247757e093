// Package preview turns a URL into a bounded plain-text preview by composing
// a pagesense.Fetcher with a pagesense.Extractor.
package preview

import (
	"context"
	"fmt"

	"github.com/fwojciec/pagesense"
)

// Ensure Previewer implements pagesense.Previewer at compile time.
var _ pagesense.Previewer = (*Previewer)(nil)

// Previewer fetches a page once and extracts its main text.
type Previewer struct {
	fetcher   pagesense.Fetcher
	extractor pagesense.Extractor
	maxLength int
}

// Option configures a Previewer.
type Option func(*Previewer)

// WithMaxLength overrides pagesense.MaxPreviewLength.
func WithMaxLength(n int) Option {
	return func(p *Previewer) {
		p.maxLength = n
	}
}

// NewPreviewer creates a new Previewer.
func NewPreviewer(fetcher pagesense.Fetcher, extractor pagesense.Extractor, opts ...Option) *Previewer {
	p := &Previewer{
		fetcher:   fetcher,
		extractor: extractor,
		maxLength: pagesense.MaxPreviewLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preview fetches url and returns the first characters of its main text.
func (p *Previewer) Preview(ctx context.Context, url string) (string, error) {
	html, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	text, err := p.extractor.Extract(html)
	if err != nil {
		return "", fmt.Errorf("extracting %s: %w", url, err)
	}
	if text == "" {
		return "", pagesense.Errorf(pagesense.ENOCONTENT, "no text content found at %s", url)
	}

	return pagesense.Truncate(text, p.maxLength), nil
}
