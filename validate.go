package listicle

import "slices"

// Validate returns an EINVALID error if the result breaks the extraction
// contract: unknown mode, missing or malformed fields, ids that do not follow
// from the product names, or tags that do not follow from the tagging rules.
func (r *Result) Validate() error {
	switch r.Mode {
	case ModeInternalAI, ModeInternalRules:
	default:
		return Errorf(EINVALID, "unknown mode %q", r.Mode)
	}
	if r.Page.URL == "" {
		return Errorf(EINVALID, "page url required")
	}
	if r.Products == nil {
		return Errorf(EINVALID, "products required")
	}

	names := make([]string, len(r.Products))
	for i, p := range r.Products {
		if p == nil {
			return Errorf(EINVALID, "product %d is null", i)
		}
		if err := p.validate(i); err != nil {
			return err
		}
		names[i] = p.Name
	}

	// Ids are a pure function of the name sequence, so recomputing them
	// catches both bad slugs and bad duplicate suffixes.
	want := AssignIDs(names)
	for i, p := range r.Products {
		if p.ID != want[i] {
			return Errorf(EINVALID, "product %d: id %q, want %q", i, p.ID, want[i])
		}
	}

	return nil
}

func (p *Product) validate(i int) error {
	if p.Rank < 1 {
		return Errorf(EINVALID, "product %d: rank must be positive, got %d", i, p.Rank)
	}
	if p.Name == "" {
		return Errorf(EINVALID, "product %d: name required", i)
	}
	if !IsValidSlug(p.ID) {
		return Errorf(EINVALID, "product %d: malformed id %q", i, p.ID)
	}
	if p.TitleLabel != nil && *p.TitleLabel == "" {
		return Errorf(EINVALID, "product %d: title label must be null or non-empty", i)
	}
	if p.Pros == nil || p.Cons == nil || p.Tags == nil {
		return Errorf(EINVALID, "product %d: pros, cons and tags must be lists", i)
	}
	for _, tag := range p.Tags {
		if !slices.Contains(Vocabulary, tag) {
			return Errorf(EINVALID, "product %d: unknown tag %q", i, tag)
		}
	}
	if want := DeriveTags(p); !sameTags(p.Tags, want) {
		return Errorf(EINVALID, "product %d: tags %v, want %v", i, p.Tags, want)
	}
	return nil
}

// sameTags compares tag lists as sets. Duplicates make the lists differ.
func sameTags(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	a, b := slices.Clone(got), slices.Clone(want)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
