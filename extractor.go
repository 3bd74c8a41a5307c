package listicle

import "context"

// Extractor turns a sanitized document into a structured Result.
type Extractor interface {
	// Extract derives the page caption and ranked products from doc.
	// Returns EBACKEND when the backend is unreachable and EEXTRACTION when
	// it answered with an unusable payload.
	Extract(ctx context.Context, doc *Document) (*Result, error)
}
