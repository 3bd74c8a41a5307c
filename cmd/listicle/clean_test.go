package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/listicle"
	main "github.com/fwojciec/listicle/cmd/listicle"
	"github.com/fwojciec/listicle/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Clean(t *testing.T) {
	t.Parallel()

	t.Run("prints title and sanitized content", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"clean", pageURL}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "TITLE: Koffiemachines\n\n<main>")
		assert.Contains(t, out, `<span class="rating">1</span>`)
		assert.NotContains(t, out, "<nav")
		assert.NotContains(t, out, "track()")
	})

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"clean", "--markdown", pageURL}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# Beste koffiemachines")
		assert.Contains(t, stdout.String(), "Snel opgewarmd")
		assert.NotContains(t, stdout.String(), "<main>")
	})

	t.Run("converts the sanitized content, not the raw page", func(t *testing.T) {
		t.Parallel()

		var converted string
		m := main.NewMain()
		m.Fetcher = pageFetcher()
		m.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				converted = html
				return "# Omgezet", nil
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"clean", "-m", pageURL}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "TITLE: Koffiemachines\n\n# Omgezet\n", stdout.String())
		assert.True(t, strings.HasPrefix(converted, "<main>"))
		assert.NotContains(t, converted, "track()")
	})

	t.Run("conversion failure is reported", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		m.Converter = &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", listicle.Errorf(listicle.EINTERNAL, "conversion failed")
			},
		}
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"clean", "--markdown", pageURL}, stdout, stderr)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "error: conversion failed")
	})

	t.Run("reports prompt token count", func(t *testing.T) {
		t.Parallel()

		var counted string
		m := main.NewMain()
		m.Fetcher = pageFetcher()
		m.TokenCounter = &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				counted = text
				return 1234, nil
			},
		}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"clean", "--tokens", pageURL}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "tokens: 1234")
		assert.Contains(t, counted, "URL: "+pageURL)
		assert.Contains(t, counted, "STRICT RULES")
	})

	t.Run("fetch failure is reported", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", listicle.Errorf(listicle.EFETCH, "HTTP 404 for %s", url)
			},
			CloseFn: func() error { return nil },
		}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"clean", pageURL}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, listicle.EFETCH, listicle.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: HTTP 404")
	})
}
