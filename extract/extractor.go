// Package extract drives listicle extraction: it encodes the extraction
// rules for a generative backend, checks the backend's answer against them,
// and wires fetching, sanitizing and extraction into a pipeline.
package extract

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/fwojciec/listicle"
)

// Ensure Extractor implements listicle.Extractor at compile time.
var _ listicle.Extractor = (*Extractor)(nil)

// Extractor implements listicle.Extractor with a generative backend.
// It issues exactly one generation request per document and never retries.
type Extractor struct {
	generator listicle.Generator
}

// NewExtractor creates a new Extractor backed by g.
func NewExtractor(g listicle.Generator) *Extractor {
	return &Extractor{generator: g}
}

// Extract sends the document and the extraction rules to the backend and
// returns the validated result.
func (e *Extractor) Extract(ctx context.Context, doc *listicle.Document) (*listicle.Result, error) {
	if doc == nil || strings.TrimSpace(doc.HTML) == "" {
		return nil, listicle.Errorf(listicle.EINVALID, "empty HTML input")
	}
	if doc.URL == "" {
		return nil, listicle.Errorf(listicle.EINVALID, "document URL required")
	}

	raw, err := e.generator.Generate(ctx, &listicle.GenerateRequest{
		System: SystemPrompt(),
		User:   BuildUserPrompt(doc),
	})
	if err != nil {
		if listicle.ErrorCode(err) == listicle.EBACKEND {
			return nil, err
		}
		return nil, listicle.WrapError(listicle.EBACKEND, err, "%s generation failed", e.generator.Name())
	}

	return ParseResult(raw, doc.URL)
}

// ParseResult decodes a backend response and checks it against the
// extraction contract. An optional code fence around the JSON is removed.
// Every failure is EEXTRACTION and carries raw as its payload.
func ParseResult(raw, url string) (*listicle.Result, error) {
	payload := StripFences(raw)
	if payload == "" {
		return nil, extractionError(raw, "empty response")
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()

	var result listicle.Result
	if err := dec.Decode(&result); err != nil {
		return nil, extractionError(raw, "malformed JSON: %v", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, extractionError(raw, "unexpected data after JSON object")
	}

	result.Normalize()

	if result.Mode != listicle.ModeInternalAI {
		return nil, extractionError(raw, "mode %q, want %q", result.Mode, listicle.ModeInternalAI)
	}
	if result.Page.URL != url {
		return nil, extractionError(raw, "page url %q, want %q", result.Page.URL, url)
	}
	if err := result.Validate(); err != nil {
		return nil, extractionError(raw, "%s", listicle.ErrorMessage(err))
	}

	return &result, nil
}

// StripFences removes a surrounding markdown code fence, including an
// optional language tag on the opening line.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func extractionError(raw, format string, args ...interface{}) error {
	err := listicle.Errorf(listicle.EEXTRACTION, format, args...)
	err.Payload = raw
	return err
}
