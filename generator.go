package listicle

import "context"

// GenerateRequest is a single text-generation call.
type GenerateRequest struct {
	// System carries the instructions, i.e. the extraction rules.
	System string

	// User carries the page data.
	User string
}

// Generator is a generative text backend.
type Generator interface {
	// Generate performs one generation call and returns the response text.
	// Transport and API failures are reported with code EBACKEND.
	Generate(ctx context.Context, req *GenerateRequest) (string, error)

	// Name identifies the backend in logs, e.g. "gemini".
	Name() string
}
