// Package trafilatura implements pagesense.Extractor with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/pagesense"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements pagesense.Extractor at compile time.
var _ pagesense.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main text of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main text with whitespace collapsed.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", pagesense.Errorf(pagesense.ENOCONTENT, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", pagesense.Errorf(pagesense.ENOCONTENT, "no extractable content: %v", err)
	}

	text := pagesense.CollapseWhitespace(result.ContentText)
	if text == "" {
		return "", pagesense.Errorf(pagesense.ENOCONTENT, "no text content in document")
	}
	return text, nil
}
