package mock

import (
	"context"

	"github.com/fwojciec/pagesense"
)

var (
	_ pagesense.Analyzer        = (*Analyzer)(nil)
	_ pagesense.AnalysisService = (*AnalysisService)(nil)
)

// Analyzer is a mock implementation of pagesense.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, text string) (pagesense.Analysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (pagesense.Analysis, error) {
	return a.AnalyzeFn(ctx, text)
}

// AnalysisService is a mock implementation of pagesense.AnalysisService.
type AnalysisService struct {
	AnalyzeURLFn func(ctx context.Context, url string) (pagesense.Analysis, error)
}

func (s *AnalysisService) AnalyzeURL(ctx context.Context, url string) (pagesense.Analysis, error) {
	return s.AnalyzeURLFn(ctx, url)
}
