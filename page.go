package listicle

// Mode identifies which extraction path produced a Result.
type Mode string

// Extraction modes.
const (
	// ModeInternalAI marks results produced by a generative backend.
	ModeInternalAI Mode = "internal_ai"

	// ModeInternalRules marks results produced by the native rules engine.
	ModeInternalRules Mode = "internal_rules"
)

// Page describes the source document of an extraction.
type Page struct {
	URL string `json:"url"`

	// MainTopic is the H1 text if present, else the document title, else "".
	MainTopic string `json:"main_topic"`
}

// Product is one ranked item extracted from a page.
type Product struct {
	ID   string `json:"id"`
	Rank int    `json:"rank"`
	Name string `json:"name"`

	// TitleLabel is the qualifier split off the heading, e.g. "Beste keuze".
	// Nil when the heading carries no qualifier.
	TitleLabel *string `json:"title_label"`

	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Label returns the title label or "" if there is none.
func (p *Product) Label() string {
	if p.TitleLabel == nil {
		return ""
	}
	return *p.TitleLabel
}

// Result is the structured record returned by an Extractor.
// Products are in extraction order, which is not necessarily rank order.
type Result struct {
	Mode     Mode       `json:"mode"`
	Page     Page       `json:"page"`
	Products []*Product `json:"products"`
}

// Normalize replaces nil collections with empty ones so that the JSON form
// never carries null for pros, cons, tags or products.
func (r *Result) Normalize() {
	if r.Products == nil {
		r.Products = []*Product{}
	}
	for _, p := range r.Products {
		if p == nil {
			continue
		}
		if p.Pros == nil {
			p.Pros = []string{}
		}
		if p.Cons == nil {
			p.Cons = []string{}
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
