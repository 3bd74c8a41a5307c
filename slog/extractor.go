package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/listicle"
)

// Ensure LoggingExtractor implements listicle.Extractor.
var _ listicle.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   listicle.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next listicle.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the product count.
// Extraction failures also log the raw backend response at debug level.
func (e *LoggingExtractor) Extract(ctx context.Context, doc *listicle.Document) (result *listicle.Result, err error) {
	defer func(begin time.Time) {
		var products int
		var mode listicle.Mode
		if result != nil {
			products = len(result.Products)
			mode = result.Mode
		}
		e.logger.Info("extract",
			"url", doc.URL,
			"mode", mode,
			"products", products,
			"duration", time.Since(begin),
			"err", err,
		)
		if raw := listicle.ErrorPayload(err); raw != "" {
			e.logger.Debug("rejected response", "url", doc.URL, "raw", raw)
		}
	}(time.Now())
	return e.next.Extract(ctx, doc)
}
