package main

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/listicle"
	listicleanthropic "github.com/fwojciec/listicle/anthropic"
	"github.com/fwojciec/listicle/gemini"
	"google.golang.org/genai"
)

// Generator builds the generative backend selected by the flags. The client
// is created here and injected; backends hold no global state.
func (c *ExtractCmd) Generator(ctx context.Context) (listicle.Generator, error) {
	switch c.Backend {
	case BackendGemini:
		if c.GeminiAPIKey == "" {
			return nil, listicle.Errorf(listicle.EINVALID, "GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, listicle.WrapError(listicle.EBACKEND, err, "failed to connect to Gemini API")
		}
		return gemini.NewGenerator(client.Models, gemini.WithModel(c.Model)), nil

	case BackendAnthropic:
		if c.AnthropicAPIKey == "" {
			return nil, listicle.Errorf(listicle.EINVALID, "ANTHROPIC_API_KEY not set")
		}
		client := anthropic.NewClient(option.WithAPIKey(c.AnthropicAPIKey))
		return listicleanthropic.NewGenerator(&client.Messages, listicleanthropic.WithModel(c.Model)), nil
	}

	return nil, listicle.Errorf(listicle.EINVALID, "backend %q has no generator", c.Backend)
}

func newTokenCounter(model string) (listicle.TokenCounter, error) {
	return gemini.NewTokenCounter(model)
}
