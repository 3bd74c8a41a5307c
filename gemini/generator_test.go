package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/listicle"
	"github.com/fwojciec/listicle/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return f.GenerateContentFn(ctx, model, contents, config)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: text}},
			},
		}},
	}
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("sends system and user text and returns response text", func(t *testing.T) {
		t.Parallel()

		var gotModel string
		var gotContents []*genai.Content
		var gotConfig *genai.GenerateContentConfig
		models := &fakeModels{
			GenerateContentFn: func(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				gotModel, gotContents, gotConfig = model, contents, config
				return textResponse(`{"mode":"internal_ai"}`), nil
			},
		}

		out, err := gemini.NewGenerator(models).Generate(context.Background(), &listicle.GenerateRequest{
			System: "rules",
			User:   "URL: https://example.nl",
		})

		require.NoError(t, err)
		assert.JSONEq(t, `{"mode":"internal_ai"}`, out)
		assert.Equal(t, gemini.DefaultModel, gotModel)
		require.Len(t, gotContents, 1)
		require.Len(t, gotContents[0].Parts, 1)
		assert.Equal(t, "URL: https://example.nl", gotContents[0].Parts[0].Text)
		assert.Equal(t, "rules", gotConfig.SystemInstruction.Parts[0].Text)
	})

	t.Run("uses configured model", func(t *testing.T) {
		t.Parallel()

		var gotModel string
		models := &fakeModels{
			GenerateContentFn: func(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				gotModel = model
				return textResponse("{}"), nil
			},
		}

		g := gemini.NewGenerator(models, gemini.WithModel("gemini-2.5-pro"))
		_, err := g.Generate(context.Background(), &listicle.GenerateRequest{})

		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-pro", gotModel)
		assert.Equal(t, "gemini-2.5-pro", g.Model())
	})

	t.Run("empty model option keeps default", func(t *testing.T) {
		t.Parallel()

		g := gemini.NewGenerator(nil, gemini.WithModel(""))

		assert.Equal(t, gemini.DefaultModel, g.Model())
	})

	t.Run("wraps API errors as backend errors", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{
			GenerateContentFn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return nil, errors.New("429 resource exhausted")
			},
		}

		_, err := gemini.NewGenerator(models).Generate(context.Background(), &listicle.GenerateRequest{})

		require.Error(t, err)
		assert.Equal(t, listicle.EBACKEND, listicle.ErrorCode(err))
		assert.Contains(t, err.Error(), "429 resource exhausted")
	})

	t.Run("nil result is a backend error", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{
			GenerateContentFn: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return nil, nil
			},
		}

		_, err := gemini.NewGenerator(models).Generate(context.Background(), &listicle.GenerateRequest{})

		assert.Equal(t, listicle.EBACKEND, listicle.ErrorCode(err))
	})
}

func TestGenerator_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gemini", gemini.NewGenerator(nil).Name()) // nil models ok for this test
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("extract products")

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, "extract products", config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0, *config.Temperature, 0.0001)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
}
