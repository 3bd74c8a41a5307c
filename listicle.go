// Package listicle extracts ranked product data from "best of" listicle
// pages. A page is fetched, stripped down to its primary content region and
// handed to an Extractor that returns a normalized, reproducible record of
// every ranked product on it.
//
// This package contains domain types, interfaces and the deterministic
// post-processing contract (slugs, tags, title splitting, validation).
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, gemini/, anthropic/, rod/).
package listicle
