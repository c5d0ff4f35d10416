// Package tags canonicalizes tag strings and reconciles new tags with a
// user's existing vocabulary.
package tags

import (
	"strings"
	"unicode/utf8"
)

// DefaultSimilarityThreshold is the minimum score for two tags to be
// treated as the same concept.
const DefaultSimilarityThreshold = 0.85

// minStemRunes guards plural collapsing so short words are left alone.
const minStemRunes = 2

var leadingArticles = []string{"the ", "a ", "an "}

// preserved holds terms that end like plurals but are not.
var preserved = map[string]struct{}{
	"aws": {}, "ios": {}, "macos": {}, "ipados": {}, "watchos": {}, "tvos": {}, "chromeos": {},
	"kubernetes": {}, "redis": {}, "postgres": {}, "nodejs": {}, "nextjs": {}, "nuxtjs": {},
	"vuejs": {}, "reactjs": {}, "threejs": {}, "d3js": {}, "devops": {}, "mlops": {},
	"gitops": {}, "finops": {}, "secops": {}, "sass": {}, "less": {}, "css": {}, "js": {},
	"windows": {}, "rails": {}, "jenkins": {}, "https": {}, "dns": {}, "cors": {}, "gis": {},
	"news": {}, "series": {}, "species": {}, "analytics": {}, "physics": {}, "mathematics": {},
	"economics": {}, "statistics": {}, "politics": {}, "ethics": {}, "graphics": {},
	"linguistics": {}, "robotics": {}, "genetics": {}, "electronics": {}, "logistics": {},
	"ergonomics": {}, "semantics": {}, "diagnostics": {}, "aesthetics": {}, "acoustics": {},
	"gas": {}, "lens": {}, "canvas": {}, "atlas": {}, "alias": {}, "bias": {}, "chaos": {},
	"kudos": {}, "pandas": {}, "keras": {}, "saas": {}, "paas": {}, "iaas": {}, "faas": {},
	"nas": {}, "dos": {}, "ddos": {}, "gps": {}, "rss": {}, "sms": {}, "cms": {},
}

// IsPreserved reports whether the lowercased, trimmed tag bypasses normalization rules.
func IsPreserved(tag string) bool {
	_, ok := preserved[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// Normalize canonicalizes a raw tag. The result is lowercase, trimmed, free of
// leading articles and singular. Empty input yields an empty string, which
// callers treat as "no tag".
func Normalize(raw string) string {
	tag := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if tag == "" {
		return ""
	}

	if _, ok := preserved[tag]; ok {
		return tag
	}

	tag = stripArticles(tag)
	if _, ok := preserved[tag]; ok {
		return tag
	}

	return singular(tag)
}

func stripArticles(tag string) string {
	for {
		stripped := false

		for _, article := range leadingArticles {
			rest, ok := strings.CutPrefix(tag, article)
			if !ok {
				continue
			}

			rest = strings.TrimSpace(rest)
			if rest == "" {
				continue
			}

			tag = rest
			stripped = true

			break
		}

		if !stripped {
			return tag
		}
	}
}

// singular collapses the plural suffix of the last word. Earlier words are
// left alone, so "machine learning models" becomes "machine learning model".
func singular(tag string) string {
	i := strings.LastIndexByte(tag, ' ')
	if i < 0 {
		return singularWord(tag)
	}

	last := tag[i+1:]
	if _, ok := preserved[last]; ok {
		return tag
	}

	return tag[:i+1] + singularWord(last)
}

// singularWord drops simple English plural suffixes. "es" is only dropped
// after sibilant stems; other "es" endings lose just the "s". Words ending in
// ss, us or is are not plurals of anything shorter and keep their "s".
func singularWord(tag string) string {
	if stem, ok := strings.CutSuffix(tag, "ies"); ok {
		if long(stem + "y") {
			return stem + "y"
		}

		return tag
	}

	if stem, ok := strings.CutSuffix(tag, "es"); ok && sibilant(stem) && long(stem) {
		return stem
	}

	if strings.HasSuffix(tag, "s") &&
		!strings.HasSuffix(tag, "ss") &&
		!strings.HasSuffix(tag, "us") &&
		!strings.HasSuffix(tag, "is") {
		stem := strings.TrimSuffix(tag, "s")
		if long(stem) {
			return stem
		}
	}

	return tag
}

func sibilant(stem string) bool {
	for _, suffix := range []string{"sh", "ch", "x", "z", "ss", "us"} {
		if strings.HasSuffix(stem, suffix) {
			return true
		}
	}

	return false
}

func long(s string) bool {
	return utf8.RuneCountInString(s) >= minStemRunes
}
