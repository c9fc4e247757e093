// Package readability implements pagesense.Extractor with go-readability,
// which scores page nodes to find the main article.
package readability

import (
	"strings"

	"github.com/fwojciec/pagesense"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements pagesense.Extractor at compile time.
var _ pagesense.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article text with whitespace collapsed.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", pagesense.Errorf(pagesense.ENOCONTENT, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", pagesense.Errorf(pagesense.ENOCONTENT, "no readable content: %v", err)
	}

	text := pagesense.CollapseWhitespace(article.TextContent)
	if text == "" {
		return "", pagesense.Errorf(pagesense.ENOCONTENT, "no text content in document")
	}
	return text, nil
}
