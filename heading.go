package listicle

import "strings"

// HeadingSeparators are the spaced dashes that may separate a qualifier
// from a product name in a heading.
var HeadingSeparators = []string{" - ", " – ", " — "}

// QualifierPrefixes are the words that mark the left side of a split heading
// as a title label. Matching is case-insensitive.
var QualifierPrefixes = []string{
	"De beste",
	"Beste",
	"Premium",
	"Budget",
	"Onze keuze",
	"Aanrader",
}

// SplitHeading splits a product heading into a title label and a name.
//
// The heading is split on the first spaced dash. When the left part starts
// with a qualifier the left part becomes the label and the right part the
// name. In every other case the label is nil and the name is the full
// heading, trimmed.
func SplitHeading(heading string) (label *string, name string) {
	heading = strings.TrimSpace(heading)

	idx, sep := -1, ""
	for _, s := range HeadingSeparators {
		if i := strings.Index(heading, s); i >= 0 && (idx < 0 || i < idx) {
			idx, sep = i, s
		}
	}
	if idx < 0 {
		return nil, heading
	}

	left := strings.TrimSpace(heading[:idx])
	right := strings.TrimSpace(heading[idx+len(sep):])
	if !hasQualifierPrefix(left) {
		return nil, heading
	}
	return &left, right
}

func hasQualifierPrefix(s string) bool {
	lower := strings.ToLower(s)
	for _, q := range QualifierPrefixes {
		if strings.HasPrefix(lower, strings.ToLower(q)) {
			return true
		}
	}
	return false
}
