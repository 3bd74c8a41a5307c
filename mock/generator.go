package mock

import (
	"context"

	"github.com/fwojciec/listicle"
)

var _ listicle.Generator = (*Generator)(nil)

// Generator is a mock implementation of listicle.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, req *listicle.GenerateRequest) (string, error)
	NameFn     func() string
}

func (g *Generator) Generate(ctx context.Context, req *listicle.GenerateRequest) (string, error) {
	return g.GenerateFn(ctx, req)
}

// Name returns "mock" unless NameFn is set.
func (g *Generator) Name() string {
	if g.NameFn == nil {
		return "mock"
	}
	return g.NameFn()
}
