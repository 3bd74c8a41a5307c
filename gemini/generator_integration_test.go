//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/listicle"
	"github.com/fwojciec/listicle/extract"
	"github.com/fwojciec/listicle/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGenerator_Integration_ExtractsProducts(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	e := extract.NewExtractor(gemini.NewGenerator(client.Models))

	result, err := e.Extract(ctx, &listicle.Document{
		URL:   "https://example.nl/koffie",
		Title: "Koffiemachines",
		HTML: `<main><h1>Beste koffiemachines</h1>
<section><h2><span class="rating">1</span> Beste keuze - Sage Bambino</h2><p>Compact.</p></section></main>`,
	})

	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "sage-bambino", result.Products[0].ID)
	assert.Equal(t, "Beste keuze", result.Products[0].Label())
}
