// Package gemini implements listicle interfaces on top of Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/listicle"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements listicle.Generator at compile time.
var _ listicle.Generator = (*Generator)(nil)

// Models is the subset of the genai Models service used by Generator.
// *genai.Models satisfies it.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator implements listicle.Generator using Google Gemini.
type Generator struct {
	models Models
	model  string
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// NewGenerator creates a new Generator. Pass client.Models for models.
func NewGenerator(models Models, opts ...Option) *Generator {
	g := &Generator{models: models, model: DefaultModel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name implements listicle.Generator.
func (g *Generator) Name() string {
	return "gemini"
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate performs a single GenerateContent call. Failures are EBACKEND.
func (g *Generator) Generate(ctx context.Context, req *listicle.GenerateRequest) (string, error) {
	result, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.User}},
		}},
		BuildConfig(req.System),
	)
	if err != nil {
		return "", listicle.WrapError(listicle.EBACKEND, err, "gemini request failed")
	}
	if result == nil {
		return "", listicle.Errorf(listicle.EBACKEND, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for an extraction call:
// the rules as system instruction, zero temperature and a JSON response.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
