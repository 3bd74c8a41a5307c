package extract

import (
	"context"

	"github.com/fwojciec/listicle"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Ensure VerifyingExtractor implements listicle.Extractor at compile time.
var _ listicle.Extractor = (*VerifyingExtractor)(nil)

// VerifyingExtractor runs a primary extractor and cross-checks its result
// against a reference extractor on the same document. The primary result is
// always returned; a difference is reported through OnMismatch.
type VerifyingExtractor struct {
	Primary   listicle.Extractor
	Reference listicle.Extractor

	// OnMismatch receives the document URL and a human-readable diff
	// (reference minus primary). A reference failure is reported as the diff.
	OnMismatch func(url, diff string)
}

// Extract implements listicle.Extractor.
func (v *VerifyingExtractor) Extract(ctx context.Context, doc *listicle.Document) (*listicle.Result, error) {
	result, err := v.Primary.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	want, err := v.Reference.Extract(ctx, doc)
	if err != nil {
		v.report(doc.URL, "reference extraction failed: "+err.Error())
		return result, nil
	}

	if diff := Diff(want, result); diff != "" {
		v.report(doc.URL, diff)
	}
	return result, nil
}

func (v *VerifyingExtractor) report(url, diff string) {
	if v.OnMismatch != nil {
		v.OnMismatch(url, diff)
	}
}

// Diff compares two results ignoring the mode, which always differs between
// the AI and rule paths. Tags are compared as a set. It returns "" when the
// results agree.
func Diff(want, got *listicle.Result) string {
	return cmp.Diff(want, got,
		cmpopts.IgnoreFields(listicle.Result{}, "Mode"),
		cmp.FilterPath(isTags, cmpopts.SortSlices(func(a, b string) bool { return a < b })),
	)
}

func isTags(p cmp.Path) bool {
	f, ok := p.Last().(cmp.StructField)
	return ok && f.Name() == "Tags"
}
