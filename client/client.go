// Package client implements the submit side of pagesense: it validates a
// URL, posts it to the analysis endpoint and turns the reply into either a
// results block or one of two fixed alerts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/fwojciec/pagesense"
	"github.com/go-resty/resty/v2"
)

// DefaultEndpoint is the analysis endpoint of a locally running server.
const DefaultEndpoint = "http://localhost:8000/analyze-url"

// DefaultTimeout bounds a single submission.
const DefaultTimeout = 60 * time.Second

// Alerts shown to the user.
const (
	AlertInvalidURL = "Invalid URL! Please enter a valid URL."
	AlertFailed     = "An error occurred while analyzing the URL. Please try again."
)

// NotAvailable replaces missing result fields.
const NotAvailable = "N/A"

// Client submits URLs to a pagesense server.
type Client struct {
	http     *resty.Client
	endpoint string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for a submission.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New creates a Client posting to endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetTimeout(DefaultTimeout).
			SetHeader("Content-Type", "application/json"),
		endpoint: endpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Outcome is what a submission produces: exactly one of Alert or Results is
// set. Err carries the underlying failure for logging when Alert is set.
type Outcome struct {
	Alert   string
	Results *Results
	Err     error
}

// HandleSubmit validates value and, if valid, submits it for analysis.
// Invalid input never reaches the network.
func (c *Client) HandleSubmit(ctx context.Context, value string) Outcome {
	if !pagesense.ValidURL(value) {
		return Outcome{Alert: AlertInvalidURL}
	}

	results, err := c.submit(ctx, value)
	if err != nil {
		return Outcome{Alert: AlertFailed, Err: err}
	}
	return Outcome{Results: results}
}

func (c *Client) submit(ctx context.Context, url string) (*Results, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(pagesense.AnalyzeRequest{URL: url}).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", url, err)
	}

	var data map[string]any
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.IsError() {
		if msg, ok := data["error"].(string); ok && msg != "" {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), msg)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), pagesense.MsgAnalyzeFailed)
	}

	return &Results{
		Sentiment:   field(data, "sentiment"),
		ContentType: field(data, "contentType"),
		TextPreview: field(data, "textPreview"),
	}, nil
}

// field returns data[key] as display text, or NotAvailable when the value is
// missing or falsy.
func field(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case nil:
		return NotAvailable
	case string:
		if v == "" {
			return NotAvailable
		}
		return v
	case bool:
		if !v {
			return NotAvailable
		}
		return "true"
	case float64:
		if v == 0 {
			return NotAvailable
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return NotAvailable
		}
		return string(b)
	}
}

// Results is the summary displayed after a successful analysis.
type Results struct {
	Sentiment   string
	ContentType string
	TextPreview string
}

var resultsTemplate = template.Must(template.New("results").Parse(
	`<p><strong>Sentiment:</strong> {{.Sentiment}}</p>` + "\n" +
		`<p><strong>Content Type:</strong> {{.ContentType}}</p>` + "\n" +
		`<p><strong>Input Text Preview:</strong> "{{.TextPreview}}"</p>`,
))

// HTML renders the results block. Field values are escaped.
func (r *Results) HTML() (string, error) {
	var buf bytes.Buffer
	if err := resultsTemplate.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
