package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/listicle"
)

// Ensure LoggingGenerator implements listicle.Generator.
var _ listicle.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   listicle.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next listicle.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate logs request and response sizes and delegates to the wrapped generator.
func (g *LoggingGenerator) Generate(ctx context.Context, req *listicle.GenerateRequest) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"backend", g.next.Name(),
			"prompt", len(req.System)+len(req.User),
			"response", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, req)
}

// Name delegates to the wrapped generator.
func (g *LoggingGenerator) Name() string {
	return g.next.Name()
}
