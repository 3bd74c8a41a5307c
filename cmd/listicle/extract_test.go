package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fwojciec/listicle"
	main "github.com/fwojciec/listicle/cmd/listicle"
	"github.com/fwojciec/listicle/goquery"
	"github.com/fwojciec/listicle/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractDeps(stdout, stderr *bytes.Buffer, fetcher listicle.Fetcher) *main.Dependencies {
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		Fetcher:   fetcher,
		Sanitizer: goquery.NewSanitizer(),
		Extractor: goquery.NewRuleExtractor(),
		Reference: goquery.NewRuleExtractor(),
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("several URLs print an array in input order", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		urls := []string{"https://a.nl/top", "https://b.nl/top", "https://c.nl/top"}

		cmd := &main.ExtractCmd{URLs: urls, Backend: main.BackendRules, Concurrency: 2}
		err := cmd.Run(extractDeps(stdout, stderr, pageFetcher()))

		require.NoError(t, err)
		var results []*listicle.Result
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
		require.Len(t, results, 3)
		for i, url := range urls {
			assert.Equal(t, url, results[i].Page.URL)
		}
	})

	t.Run("failed pages are null and reported on stderr", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://kapot.nl" {
					return "", listicle.Errorf(listicle.EFETCH, "HTTP 503 for %s", url)
				}
				return pageHTML, nil
			},
		}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		cmd := &main.ExtractCmd{URLs: []string{"https://kapot.nl", pageURL}, Backend: main.BackendRules}
		err := cmd.Run(extractDeps(stdout, stderr, fetcher))

		require.Error(t, err)
		assert.Contains(t, listicle.ErrorMessage(err), "1 of 2 pages failed")
		var results []*listicle.Result
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Nil(t, results[0])
		assert.Equal(t, pageURL, results[1].Page.URL)
		assert.Contains(t, stderr.String(), "error: https://kapot.nl: HTTP 503")
	})

	t.Run("fail fast prints nothing on failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", listicle.Errorf(listicle.EFETCH, "HTTP 404")
			},
		}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		cmd := &main.ExtractCmd{URLs: []string{"https://a.nl", "https://b.nl"}, Backend: main.BackendRules, FailFast: true}
		err := cmd.Run(extractDeps(stdout, stderr, fetcher))

		require.Error(t, err)
		assert.Equal(t, listicle.EFETCH, listicle.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})

	t.Run("keeps special characters unescaped", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return `<main><section><h2><span class="rating">1</span> Smeg &amp; Co &lt;Retro&gt;</h2></section></main>`, nil
			},
		}
		stdout := &bytes.Buffer{}

		cmd := &main.ExtractCmd{URLs: []string{pageURL}, Backend: main.BackendRules, RPS: 5}
		err := cmd.Run(extractDeps(stdout, &bytes.Buffer{}, fetcher))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"name": "Smeg & Co <Retro>"`)
	})
}
