//go:build integration

package gemini_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/pagesense/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestAnalyzer_Integration_ClassifiesText(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	analyzer := gemini.NewAnalyzer(client, gemini.DefaultModel)

	analysis, err := analyzer.Analyze(ctx, "What a wonderful day! The team shipped the release and everyone is thrilled.")
	require.NoError(t, err)

	var result gemini.Result
	require.NoError(t, json.Unmarshal(analysis, &result))
	assert.Contains(t, gemini.Sentiments, result.Sentiment)
	assert.NotEmpty(t, result.ContentType)
}
