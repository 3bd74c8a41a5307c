package mock

import (
	"context"

	"github.com/fwojciec/listicle"
)

var _ listicle.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of listicle.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, doc *listicle.Document) (*listicle.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, doc *listicle.Document) (*listicle.Result, error) {
	return e.ExtractFn(ctx, doc)
}
