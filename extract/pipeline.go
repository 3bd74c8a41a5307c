package extract

import (
	"context"

	"github.com/fwojciec/listicle"
)

// Runner extracts a Result for a single URL.
type Runner interface {
	Run(ctx context.Context, url string) (*listicle.Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, url string) (*listicle.Result, error)

// Run calls f(ctx, url).
func (f RunnerFunc) Run(ctx context.Context, url string) (*listicle.Result, error) {
	return f(ctx, url)
}

// Ensure Pipeline implements Runner at compile time.
var _ Runner = (*Pipeline)(nil)

// Pipeline fetches a page, sanitizes it and extracts its products.
// It holds no state between calls and is safe for concurrent use when its
// dependencies are.
type Pipeline struct {
	Fetcher   listicle.Fetcher
	Sanitizer listicle.Sanitizer
	Extractor listicle.Extractor
}

// Document fetches and sanitizes the page at url.
func (p *Pipeline) Document(ctx context.Context, url string) (*listicle.Document, error) {
	raw, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		if listicle.ErrorCode(err) == listicle.EFETCH {
			return nil, err
		}
		return nil, listicle.WrapError(listicle.EFETCH, err, "fetching %s", url)
	}

	cleaned, title, err := p.Sanitizer.Sanitize(raw)
	if err != nil {
		return nil, err
	}

	return &listicle.Document{URL: url, Title: title, HTML: cleaned}, nil
}

// Run fetches, sanitizes and extracts the page at url.
func (p *Pipeline) Run(ctx context.Context, url string) (*listicle.Result, error) {
	doc, err := p.Document(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.Extractor.Extract(ctx, doc)
}
