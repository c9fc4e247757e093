package pagesense

// Extractor derives the main plain text of an HTML document.
type Extractor interface {
	// Extract returns the document's main text with surrounding whitespace
	// trimmed. Returns ENOCONTENT if the document has no text at all.
	Extract(html string) (string, error)
}
