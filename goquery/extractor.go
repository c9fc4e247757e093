// Package goquery implements pagesense.Extractor using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagesense"
)

// DefaultContentSelector matches elements that usually hold a page's main body.
const DefaultContentSelector = "article, .post, .content"

// Ensure Extractor implements pagesense.Extractor at compile time.
var _ pagesense.Extractor = (*Extractor)(nil)

// Extractor pulls the main text out of an HTML document. Text inside
// elements matching the content selector wins; otherwise the whole body
// text is used with whitespace runs collapsed.
type Extractor struct {
	selector string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithContentSelector overrides DefaultContentSelector.
func WithContentSelector(selector string) Option {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{selector: DefaultContentSelector}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the document's main text.
func (e *Extractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", pagesense.Errorf(pagesense.EINVALID, "failed to parse HTML: %v", err)
	}

	// Matches are concatenated in document order without a separator.
	if text := strings.TrimSpace(doc.Find(e.selector).Text()); text != "" {
		return text, nil
	}

	if text := pagesense.CollapseWhitespace(doc.Find("body").Text()); text != "" {
		return text, nil
	}

	return "", pagesense.Errorf(pagesense.ENOCONTENT, "no text content in document")
}
