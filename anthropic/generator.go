// Package anthropic implements listicle.Generator on top of the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/listicle"
)

// Defaults for extraction requests.
const (
	DefaultModel     = "claude-sonnet-4-5"
	DefaultMaxTokens = 8192
)

// Ensure Generator implements listicle.Generator at compile time.
var _ listicle.Generator = (*Generator)(nil)

// MessagesAPI is the subset of the Messages service used by Generator.
// &client.Messages satisfies it.
type MessagesAPI interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Generator implements listicle.Generator using Claude.
type Generator struct {
	messages  MessagesAPI
	model     string
	maxTokens int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the Claude model name.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithMaxTokens caps the response length.
func WithMaxTokens(n int64) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(messages MessagesAPI, opts ...Option) *Generator {
	g := &Generator{
		messages:  messages,
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name implements listicle.Generator.
func (g *Generator) Name() string {
	return "anthropic"
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// Generate sends one message and returns the concatenated text blocks of
// the reply. A reply cut off at the token limit is a backend error, since
// its JSON is necessarily incomplete.
func (g *Generator) Generate(ctx context.Context, req *listicle.GenerateRequest) (string, error) {
	msg, err := g.messages.New(ctx, BuildParams(g.model, g.maxTokens, req))
	if err != nil {
		return "", listicle.WrapError(listicle.EBACKEND, err, "anthropic request failed")
	}
	if msg == nil {
		return "", listicle.Errorf(listicle.EBACKEND, "anthropic returned nil message")
	}
	if msg.StopReason == "max_tokens" {
		return "", listicle.Errorf(listicle.EBACKEND, "anthropic response truncated at %d tokens", g.maxTokens)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// BuildParams returns the request parameters for an extraction call.
func BuildParams(model string, maxTokens int64, req *listicle.GenerateRequest) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
		Temperature: anthropic.Float(0),
	}
}
