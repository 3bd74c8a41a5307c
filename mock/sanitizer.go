package mock

import "github.com/fwojciec/listicle"

var _ listicle.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of listicle.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) (string, string, error)
}

func (s *Sanitizer) Sanitize(html string) (string, string, error) {
	return s.SanitizeFn(html)
}
