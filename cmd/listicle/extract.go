package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/fwojciec/listicle"
	"github.com/fwojciec/listicle/extract"
)

// ErrMismatch reports that --verify found a difference between the backend
// and the rules engine.
var ErrMismatch = errors.New("extraction differs from rules engine")

// Run executes the extract command. A single URL prints one JSON object;
// several URLs print an array in input order with null for failed pages.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	extractor := deps.Extractor

	var mu sync.Mutex
	mismatches := 0
	if c.Verify {
		extractor = &extract.VerifyingExtractor{
			Primary:   deps.Extractor,
			Reference: deps.Reference,
			OnMismatch: func(url, diff string) {
				mu.Lock()
				defer mu.Unlock()
				mismatches++
				fmt.Fprintf(deps.Stderr, "mismatch for %s (-rules +%s):\n%s\n", url, c.Backend, diff)
			},
		}
	}

	batch := &extract.Batch{
		Runner: &extract.Pipeline{
			Fetcher:   deps.Fetcher,
			Sanitizer: deps.Sanitizer,
			Extractor: extractor,
		},
		Concurrency: c.Concurrency,
		FailFast:    c.FailFast,
		Logger:      deps.Logger,
	}
	if c.RPS > 0 {
		batch.Limiter = extract.NewHostLimiter(c.RPS)
	}

	outcomes, err := batch.Run(deps.Ctx, c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", listicle.ErrorMessage(err))
		return err
	}

	failed := 0
	results := make([]*listicle.Result, len(outcomes))
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.URL, listicle.ErrorMessage(o.Err))
			continue
		}
		results[i] = o.Result
	}

	var out any = results
	if len(results) == 1 {
		out = results[0]
	}
	if len(results) > 1 || failed == 0 {
		if err := writeJSON(deps, out); err != nil {
			return err
		}
	}

	if failed > 0 {
		if len(outcomes) == 1 {
			return outcomes[0].Err
		}
		return listicle.Errorf(listicle.EINTERNAL, "%d of %d pages failed", failed, len(outcomes))
	}
	if mismatches > 0 {
		return ErrMismatch
	}
	return nil
}

func writeJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
