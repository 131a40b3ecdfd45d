// Package services contains pure domain logic for the resolution pipeline.
package services

import (
	"regexp"
	"strings"
)

// MinSearchLength is the minimum normalized-name length required before an
// entry may be sent to a live-search provider. Shorter names are too
// ambiguous and produce false positives from short, generic tokens.
const MinSearchLength = 3

// similarityPrefixLen is the number of leading normalized characters used
// as the minimum discriminator in the prefix-containment test.
const similarityPrefixLen = 5

var (
	trailingParen   = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	trailingVersion = regexp.MustCompile(`[\s_-]+v?[0-9][0-9.]*$`)
	nonAlphanum     = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// NormalizeName canonicalizes a raw software name for comparison: trailing
// parenthetical qualifiers (architecture hints and the like) and trailing
// numeric version suffixes are stripped, everything non-alphanumeric is
// removed, and the result is lowercased. The same form is used for static
// table lookups and for comparing provider search results.
func NormalizeName(name string) string {
	s := strings.TrimSpace(name)

	for {
		stripped := trailingParen.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	for {
		stripped := trailingVersion.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	return strings.ToLower(nonAlphanum.ReplaceAllString(s, ""))
}

// CleanName strips the same trailing qualifiers as NormalizeName but keeps
// interior spacing and case, producing a search term fit for a live query.
func CleanName(name string) string {
	s := strings.TrimSpace(name)

	for {
		stripped := trailingParen.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	for {
		stripped := trailingVersion.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	return strings.TrimSpace(s)
}

// SimilarName reports whether a candidate string names the same software
// as the target: bidirectional substring containment after normalization,
// or containment of the target's first five normalized characters.
//
// This is a simple but known-imprecise rule (no edit distance, no
// ranking; the first candidate passing it is accepted). Existing record
// sets were produced under it, so changing it changes which packages
// resolve.
func SimilarName(target, candidate string) bool {
	nt := NormalizeName(target)
	nc := NormalizeName(candidate)
	if nt == "" || nc == "" {
		return false
	}

	if strings.Contains(nc, nt) || strings.Contains(nt, nc) {
		return true
	}

	prefix := nt
	if len(prefix) > similarityPrefixLen {
		prefix = prefix[:similarityPrefixLen]
	}
	return strings.Contains(nc, prefix)
}

// Searchable reports whether a name is long enough, once normalized, to be
// sent to a live-search provider.
func Searchable(name string) bool {
	return len(NormalizeName(name)) >= MinSearchLength
}
