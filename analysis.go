package pagesense

import (
	"bytes"
	"context"
	"encoding/json"
)

// Analysis is the payload returned by the analysis delegate. It is kept as
// raw JSON and passed through to clients unmodified.
type Analysis []byte

// Empty reports whether the delegate returned no usable payload: no bytes
// at all, or a falsy JSON scalar (null, false, 0 or "").
func (a Analysis) Empty() bool {
	b := bytes.TrimSpace(a)
	if len(b) == 0 {
		return true
	}
	if b[0] == '{' || b[0] == '[' {
		return false
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	}
	return false
}

// Analyzer sends text to an external analysis service.
type Analyzer interface {
	// Analyze submits text for sentiment/content classification and returns
	// the service's payload. Returns EUNAVAILABLE if the service cannot be
	// reached or fails.
	Analyze(ctx context.Context, text string) (Analysis, error)
}

// AnalysisService runs the scrape → analyze pipeline for a URL.
type AnalysisService interface {
	// AnalyzeURL previews url and analyzes the preview.
	// Returns EINVALID for an empty url, ENOCONTENT when no text could be
	// extracted, EUNAVAILABLE when the delegate fails and EBADRESPONSE when
	// the delegate returns an empty payload.
	AnalyzeURL(ctx context.Context, url string) (Analysis, error)
}

// AnalyzeRequest is the body of an analysis request.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeText is the body sent to the analysis delegate.
type AnalyzeText struct {
	Text string `json:"text"`
}

// ErrorResponse is the body returned when a request fails.
type ErrorResponse struct {
	Error string `json:"error"`
}
