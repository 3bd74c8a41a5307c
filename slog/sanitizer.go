package slog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/listicle"
)

// Ensure LoggingSanitizer implements listicle.Sanitizer.
var _ listicle.Sanitizer = (*LoggingSanitizer)(nil)

// LoggingSanitizer wraps a Sanitizer with debug logging. Each line carries a
// fingerprint of the cleaned HTML, so runs over an unchanged page can be
// matched up without storing the page.
type LoggingSanitizer struct {
	next   listicle.Sanitizer
	logger *slog.Logger
}

// NewLoggingSanitizer creates a new LoggingSanitizer.
func NewLoggingSanitizer(next listicle.Sanitizer, logger *slog.Logger) *LoggingSanitizer {
	return &LoggingSanitizer{next: next, logger: logger}
}

// Sanitize delegates to the wrapped sanitizer and logs the size reduction.
func (s *LoggingSanitizer) Sanitize(html string) (cleaned, title string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("sanitize",
			"in", len(html),
			"out", len(cleaned),
			"hash", Fingerprint(cleaned),
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sanitize(html)
}

// Fingerprint returns the xxhash64 of s as 16 hex digits.
func Fingerprint(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}
