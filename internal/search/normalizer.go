package search

import "strings"

// Expand rewrites a raw bilingual query into the canonical catalog search
// vocabulary. The full string is tried against the synonym table first so
// multi-word phrases win over their individual tokens; otherwise each
// whitespace-delimited token is mapped independently and unmapped tokens
// pass through unchanged. Empty or whitespace-only input comes back as-is.
func Expand(rawQuery string) string {
	query := strings.ToLower(strings.TrimSpace(rawQuery))
	if query == "" {
		return rawQuery
	}

	if expanded, ok := synonyms[query]; ok {
		return expanded
	}

	tokens := strings.Fields(query)
	changed := false
	for i, token := range tokens {
		if mapped, ok := synonyms[token]; ok {
			tokens[i] = mapped
			changed = true
		}
	}
	if !changed {
		return rawQuery
	}
	return strings.Join(tokens, " ")
}

// Sanitize strips characters that are structurally significant to the
// catalog filter syntax (comma separates or-conditions, percent is the
// wildcard) before a value is interpolated into a filter.
func Sanitize(value string) string {
	value = strings.ReplaceAll(value, ",", " ")
	value = strings.ReplaceAll(value, "%", "")
	return strings.TrimSpace(value)
}
