package mock

import "github.com/fwojciec/listicle"

var _ listicle.Converter = (*Converter)(nil)

// Converter is a mock implementation of listicle.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
