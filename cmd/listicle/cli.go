package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/listicle"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   listicle.Fetcher
	Sanitizer listicle.Sanitizer
	Extractor listicle.Extractor

	// Reference is the deterministic extractor used by --verify.
	Reference listicle.Extractor

	Converter    listicle.Converter
	TokenCounter listicle.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log every fetch, sanitize and extract step to stderr"`
	Browser bool          `help:"Render pages in headless Chrome before extraction"`
	Timeout time.Duration `default:"30s" help:"Per-page fetch timeout"`

	Extract ExtractCmd `cmd:"" help:"Extract ranked products from one or more pages"`
	Clean   CleanCmd   `cmd:"" help:"Print the sanitized content of a page"`
}

// Supported extraction backends.
const (
	BackendGemini    = "gemini"
	BackendAnthropic = "anthropic"
	BackendRules     = "rules"
)

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs []string `arg:"" name:"url" help:"Page URLs"`

	Backend         string `enum:"gemini,anthropic,rules" default:"gemini" env:"LISTICLE_BACKEND" help:"Extraction backend (gemini, anthropic, rules)"`
	Model           string `env:"LISTICLE_MODEL" help:"Backend model; defaults per backend"`
	GeminiAPIKey    string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	AnthropicAPIKey string `name:"anthropic-api-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`

	Verify      bool    `help:"Cross-check results against the rules engine; exit status 3 on mismatch"`
	Concurrency int     `short:"c" default:"3" help:"Pages extracted at once"`
	RPS         float64 `name:"rps" default:"0" help:"Extractions started per second per host; 0 means unlimited"`
	FailFast    bool    `help:"Stop at the first failed page"`
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	URL            string `arg:"" help:"Page URL"`
	Markdown       bool   `short:"m" help:"Render the sanitized content as Markdown"`
	Tokens         bool   `help:"Report the prompt token count on stderr"`
	TokenizerModel string `default:"gemini-2.5-flash" help:"Model whose tokenizer --tokens uses"`
}
