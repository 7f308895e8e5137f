package catalog

import (
	"regexp"
	"strings"
)

var (
	nonWordRe   = regexp.MustCompile(`[^a-z0-9\s-]+`)
	whitespace  = regexp.MustCompile(`\s+`)
	multiHyphen = regexp.MustCompile(`-+`)
)

// Slugify normalizes a title into a URL-safe identifier: lowercase,
// trimmed, non-word characters stripped, whitespace collapsed to single
// hyphens, repeated hyphens collapsed, leading/trailing hyphens removed.
// The result is stable: Slugify(Slugify(x)) == Slugify(x).
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Slug derives a stable identifier for a product: the explicit id
// (lowercased, trimmed) when present, otherwise a slug computed from
// the title. Returns "" when no usable field exists.
func (p Product) Slug() string {
	if id := p.ID(); id != "" {
		return strings.ToLower(strings.TrimSpace(id))
	}
	if title := p.Title(); title != "" {
		return Slugify(title)
	}
	return ""
}

// SlugMatch reports whether two slugs identify the same record: full
// equality or substring containment in either direction. Empty slugs
// never match.
func SlugMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchesIdentifier reports whether a product is identified by the given
// identifier, by exact id comparison first and slug comparison second.
func (p Product) MatchesIdentifier(id string) bool {
	if id == "" {
		return false
	}
	if p.ID() == id {
		return true
	}
	want := Slugify(id)
	if title := p.Title(); title != "" && SlugMatch(Slugify(title), want) {
		return true
	}
	return SlugMatch(p.Slug(), want)
}
