// Package gemini implements pagesense.Analyzer using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagesense"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Sentiment labels the model may return.
var Sentiments = []string{"positive", "negative", "neutral", "mixed"}

// Ensure Analyzer implements pagesense.Analyzer at compile time.
var _ pagesense.Analyzer = (*Analyzer)(nil)

// Analyzer classifies text with Gemini and returns a payload shaped like
// the NLP API's: sentiment, contentType and textPreview.
type Analyzer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTimeout bounds a single GenerateContent call. Zero means no bound
// beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		a.timeout = d
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client, model string, opts ...Option) *Analyzer {
	if model == "" {
		model = DefaultModel
	}
	a := &Analyzer{client: client, model: model}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the JSON object Gemini is asked to produce.
type Result struct {
	Sentiment   string `json:"sentiment"`
	ContentType string `json:"contentType"`
	TextPreview string `json:"textPreview"`
}

// Analyze classifies text.
func (a *Analyzer) Analyze(ctx context.Context, text string) (pagesense.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pagesense.Errorf(pagesense.EINVALID, "text required")
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, pagesense.Errorf(pagesense.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return nil, pagesense.Errorf(pagesense.EUNAVAILABLE, "gemini returned nil result")
	}

	return BuildAnalysis(result.Text(), text)
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The response is constrained to a JSON object with a sentiment and a content type.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You classify short excerpts of web pages. Report the overall sentiment of the excerpt and a short label for the kind of content it is (for example: news, blog post, product page, documentation, opinion).",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"sentiment":   {Type: genai.TypeString, Enum: Sentiments},
				"contentType": {Type: genai.TypeString},
			},
			Required: []string{"sentiment", "contentType"},
		},
	}
}

// BuildUserPrompt builds the user prompt containing the excerpt.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<excerpt>\n")
	sb.WriteString(text)
	sb.WriteString("\n</excerpt>\n\n")
	sb.WriteString("Classify the excerpt.")
	return sb.String()
}

// BuildAnalysis decodes the model output and echoes text as textPreview.
// Returns EBADRESPONSE if the output is not the expected JSON object.
func BuildAnalysis(raw, text string) (pagesense.Analysis, error) {
	var r Result
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, pagesense.Errorf(pagesense.EBADRESPONSE, "gemini returned invalid JSON: %v", err)
	}
	if r.Sentiment == "" {
		return nil, pagesense.Errorf(pagesense.EBADRESPONSE, "gemini returned no sentiment")
	}
	r.TextPreview = text

	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}
	return pagesense.Analysis(b), nil
}
