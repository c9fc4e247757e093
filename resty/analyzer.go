// Package resty implements pagesense.Analyzer against a remote NLP API using
// the resty HTTP client.
package resty

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/fwojciec/pagesense"
	"github.com/go-resty/resty/v2"
)

// DefaultEndpoint is the NLP API used when none is configured.
const DefaultEndpoint = "https://kooye7u703.execute-api.us-east-1.amazonaws.com/NLPAnalyzer"

// DefaultTimeout bounds a single call to the NLP API.
const DefaultTimeout = 30 * time.Second

// Ensure Analyzer implements pagesense.Analyzer at compile time.
var _ pagesense.Analyzer = (*Analyzer)(nil)

// Analyzer posts text to an NLP API and returns the raw response body.
// A single attempt is made per call.
type Analyzer struct {
	client   *resty.Client
	endpoint string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTimeout sets the timeout for a call to the NLP API.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.client.SetTimeout(d)
	}
}

// NewAnalyzer creates a new Analyzer posting to endpoint.
func NewAnalyzer(endpoint string, opts ...Option) *Analyzer {
	client := resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	a := &Analyzer{client: client, endpoint: endpoint}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze posts {"text": text} to the endpoint. A body that is not JSON is
// returned encoded as a JSON string so callers always receive valid JSON.
func (a *Analyzer) Analyze(ctx context.Context, text string) (pagesense.Analysis, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(pagesense.AnalyzeText{Text: text}).
		Post(a.endpoint)
	if err != nil {
		return nil, pagesense.Errorf(pagesense.EUNAVAILABLE, "nlp api request failed: %v", err)
	}
	if resp.IsError() {
		return nil, pagesense.Errorf(pagesense.EUNAVAILABLE, "nlp api returned HTTP %d", resp.StatusCode())
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || json.Valid(body) {
		return pagesense.Analysis(body), nil
	}

	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil, pagesense.Errorf(pagesense.EBADRESPONSE, "encoding nlp api response: %v", err)
	}
	return pagesense.Analysis(quoted), nil
}
