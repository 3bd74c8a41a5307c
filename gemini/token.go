package gemini

import (
	"context"

	"github.com/fwojciec/listicle"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ listicle.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally with the Gemini tokenizer, without an
// API call. It reports how much of the context window a sanitized page uses.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, listicle.WrapError(listicle.EINVALID, err, "no local tokenizer for model %q", model)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, listicle.WrapError(listicle.EINTERNAL, err, "counting tokens")
	}

	return int(result.TotalTokens), nil
}
