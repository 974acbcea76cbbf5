// Package normalize prepares raw query text for ranking.
package normalize

import "strings"

// stopWords is the closed set of tokens excluded from ranking: articles,
// conjunctions, common prepositions, pronouns, and auxiliary/copula verb
// forms. The set is part of the ranking contract; extending it changes
// result ordering for existing queries.
var stopWords = map[string]struct{}{
	// articles
	"a": {}, "an": {}, "the": {},
	// conjunctions
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {}, "for": {},
	// prepositions
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "from": {}, "by": {},
	"with": {}, "about": {}, "as": {}, "into": {}, "over": {}, "after": {},
	"under": {}, "between": {}, "through": {}, "during": {}, "before": {},
	"above": {}, "below": {}, "up": {}, "down": {}, "off": {}, "out": {},
	// pronouns
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {}, "my": {},
	"your": {}, "his": {}, "its": {}, "our": {}, "their": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "what": {}, "which": {},
	"who": {}, "whom": {},
	// auxiliaries
	"is": {}, "am": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "do": {}, "does": {}, "did": {}, "have": {},
	"has": {}, "had": {}, "will": {}, "would": {}, "shall": {},
	"should": {}, "can": {}, "could": {}, "may": {}, "might": {}, "must": {},
}

// Normalize lowercases raw query text and strips stop words.
//
// Tokens are split on whitespace and rejoined with single spaces. No
// stemming, no unicode normalization beyond case folding. Input consisting
// solely of stop words (or empty input) yields the empty string; callers
// handle empty-query semantics.
func Normalize(raw string) string {
	fields := strings.Fields(raw)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.ToLower(f)
		if _, stop := stopWords[token]; stop {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// IsStopWord reports whether token (already lowercased) is in the stop set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
