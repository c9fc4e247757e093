package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesense"
)

// Ensure LoggingAnalyzer implements pagesense.Analyzer.
var _ pagesense.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging. The text sent and the raw
// response are logged at debug level only.
type LoggingAnalyzer struct {
	next   pagesense.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next pagesense.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze logs the delegate call and delegates to the wrapped analyzer.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, text string) (result pagesense.Analysis, err error) {
	a.logger.Debug("analyze request", "text", text)
	defer func(begin time.Time) {
		a.logger.Info("analyze",
			"bytes", len(result),
			"duration", time.Since(begin),
			"err", err,
		)
		if err == nil {
			a.logger.Debug("analyze response", "body", string(result))
		}
	}(time.Now())
	return a.next.Analyze(ctx, text)
}
