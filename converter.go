package listicle

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be sanitized HTML (e.g., from a Sanitizer).
	Convert(html string) (string, error)
}
