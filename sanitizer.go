package listicle

// Document is a sanitized page ready for extraction.
type Document struct {
	// URL the document was fetched from.
	URL string

	// Title is the trimmed <title> text, captured before any markup was removed.
	Title string

	// HTML is the serialized primary content region (main, article or body)
	// with scripts, chrome, comments and hidden elements removed.
	HTML string
}

// Sanitizer strips non-content markup from raw HTML.
type Sanitizer interface {
	// Sanitize parses raw HTML and returns the cleaned primary content
	// region together with the page title.
	Sanitize(html string) (cleaned string, title string, err error)
}
