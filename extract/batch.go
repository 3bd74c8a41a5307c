package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/listicle"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once when
// Batch.Concurrency is not set.
const DefaultConcurrency = 3

// Outcome is the result of one URL in a batch.
type Outcome struct {
	URL    string
	RunID  string
	Result *listicle.Result
	Err    error
}

// Batch runs independent extractions concurrently. Outcomes keep the order
// of the input URLs regardless of completion order.
type Batch struct {
	Runner Runner

	// Concurrency bounds in-flight extractions. Defaults to DefaultConcurrency.
	Concurrency int

	// Limiter, if set, paces the start of each extraction per host.
	// The core itself never retries.
	Limiter *HostLimiter

	// FailFast cancels the remaining extractions after the first failure.
	FailFast bool

	// Logger, if set, receives one line per URL tagged with its run id.
	Logger *slog.Logger
}

// Run extracts every URL. Without FailFast it returns all outcomes and a nil
// error; per-URL failures are reported in Outcome.Err. With FailFast it
// returns the first failure.
func (b *Batch) Run(ctx context.Context, urls []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(urls))

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, url := range urls {
		outcomes[i] = Outcome{URL: url, RunID: uuid.NewString()}

		g.Go(func() error {
			out := &outcomes[i]
			out.Result, out.Err = b.runOne(ctx, out.RunID, url)
			if out.Err != nil && b.FailFast {
				return out.Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

func (b *Batch) runOne(ctx context.Context, runID, url string) (result *listicle.Result, err error) {
	if b.Logger != nil {
		defer func(begin time.Time) {
			products := 0
			if result != nil {
				products = len(result.Products)
			}
			b.Logger.With("run", runID).Info("extraction",
				"url", url,
				"products", products,
				"duration", time.Since(begin),
				"code", listicle.ErrorCode(err),
				"err", err,
			)
		}(time.Now())
	}

	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx, url); err != nil {
			return nil, err
		}
	}
	return b.Runner.Run(ctx, url)
}
