package nlp

// Common English words excluded from the normalized lemma stream. None of
// these overlap with the focus keyword vocabulary.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"then": {}, "than": {}, "so": {}, "as": {}, "at": {}, "by": {}, "for": {},
	"from": {}, "in": {}, "into": {}, "of": {}, "on": {}, "to": {}, "with": {},
	"about": {}, "up": {}, "out": {}, "over": {}, "under": {}, "again": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"am": {}, "do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"can": {}, "shall": {}, "not": {}, "no": {}, "nor": {}, "very": {},
	"it": {}, "its": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"there": {}, "here": {}, "what": {}, "which": {}, "who": {}, "whom": {},
	"how": {}, "when": {}, "where": {}, "why": {}, "all": {}, "any": {},
	"both": {}, "each": {}, "few": {}, "more": {}, "most": {}, "other": {},
	"some": {}, "such": {}, "only": {}, "own": {}, "same": {}, "too": {},
	"i": {}, "me": {}, "my": {}, "we": {}, "our": {}, "you": {}, "your": {},
	"he": {}, "him": {}, "his": {}, "she": {}, "her": {}, "they": {},
	"them": {}, "their": {}, "us": {}, "also": {}, "just": {}, "really": {},
}

// IsStopWord reports whether the lowercase word carries no keyword signal.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
