// Package analyze sequences preview extraction and delegation for a URL.
package analyze

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pagesense"
)

// Ensure Service implements pagesense.AnalysisService at compile time.
var _ pagesense.AnalysisService = (*Service)(nil)

// Service runs the scrape → analyze pipeline. Every stage failure is
// converted into a coded pagesense.Error carrying the user-facing message;
// the underlying cause is logged, not returned.
type Service struct {
	previews pagesense.Previewer
	analyzer pagesense.Analyzer
	logger   *slog.Logger
}

// NewService creates a new Service. A nil logger discards log output.
func NewService(previews pagesense.Previewer, analyzer pagesense.Analyzer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{previews: previews, analyzer: analyzer, logger: logger}
}

// AnalyzeURL previews url and returns the delegate's analysis of the preview.
func (s *Service) AnalyzeURL(ctx context.Context, url string) (pagesense.Analysis, error) {
	if url == "" {
		return nil, pagesense.Errorf(pagesense.EINVALID, pagesense.MsgURLRequired)
	}

	// Fetch failures and empty pages collapse into the same outcome.
	text, err := s.previews.Preview(ctx, url)
	if err != nil {
		s.logger.Warn("preview failed", "url", url, "err", err)
		return nil, pagesense.Errorf(pagesense.ENOCONTENT, pagesense.MsgNoContent)
	}
	if text == "" {
		return nil, pagesense.Errorf(pagesense.ENOCONTENT, pagesense.MsgNoContent)
	}

	analysis, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		s.logger.Error("analysis failed", "url", url, "err", err)
		if pagesense.ErrorCode(err) == pagesense.EBADRESPONSE {
			return nil, pagesense.Errorf(pagesense.EBADRESPONSE, pagesense.MsgInvalidResponse)
		}
		return nil, pagesense.Errorf(pagesense.EUNAVAILABLE, pagesense.MsgAnalyzeFailed)
	}
	if analysis.Empty() {
		s.logger.Error("analysis returned empty payload", "url", url)
		return nil, pagesense.Errorf(pagesense.EBADRESPONSE, pagesense.MsgInvalidResponse)
	}

	return analysis, nil
}
