package listicle

import "strings"

// Product tags. No other tag may ever be produced.
const (
	TagBestOverall = "best_overall"
	TagBudgetPick  = "budget_pick"
	TagPremiumPick = "premium_pick"
	TagBestValue   = "best_value"
)

// Vocabulary lists every tag in evaluation order.
var Vocabulary = []string{TagBestOverall, TagBudgetPick, TagPremiumPick, TagBestValue}

var (
	budgetTerms  = []string{"budget"}
	premiumTerms = []string{"luxe", "premium"}

	// ValuePhrases mark a product as best value when found in its label,
	// summary or any pro.
	ValuePhrases = []string{
		"prijs-kwaliteit",
		"beste koop",
		"sterkste keuze binnen",
		"beste keuze voor je geld",
	}
)

// DeriveTags returns the tags that apply to p, in vocabulary order.
// Tags depend only on rank, title label, summary and pros; prices and
// scores are never consulted. The result is never nil.
func DeriveTags(p *Product) []string {
	tags := []string{}
	label := strings.ToLower(p.Label())

	if p.Rank == 1 {
		tags = append(tags, TagBestOverall)
	}
	if containsAny(label, budgetTerms) {
		tags = append(tags, TagBudgetPick)
	}
	if containsAny(label, premiumTerms) {
		tags = append(tags, TagPremiumPick)
	}
	if hasValuePhrase(p) {
		tags = append(tags, TagBestValue)
	}

	return tags
}

func hasValuePhrase(p *Product) bool {
	if containsAny(strings.ToLower(p.Label()), ValuePhrases) {
		return true
	}
	if containsAny(strings.ToLower(p.Summary), ValuePhrases) {
		return true
	}
	for _, pro := range p.Pros {
		if containsAny(strings.ToLower(pro), ValuePhrases) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
