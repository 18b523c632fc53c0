package scorer

import (
	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/nlp"
)

// Keyword is one vocabulary entry: the factor it counts toward ("quiet",
// "wifi", "crowded", ...) and its signed contribution to a review's raw
// score. Negative weights pull the score down.
type Keyword struct {
	Factor string
	Weight float64
}

// Table maps normalized lemmas to keywords. Entries are run through the same
// lemmatizer as review text, so inflected terms ("outlets", "studies") land
// on the lemma their surface forms produce.
type Table map[string]Keyword

// Match is one keyword occurrence in a review, with the byte span of the
// surface word in the original text.
type Match struct {
	Term   string
	Factor string
	Weight float64
	Start  int
	End    int
}

// MatchResult is every keyword occurrence found in one review. Repetition
// counts: a review saying "quiet" three times matches three times.
type MatchResult []Match

var defaultKeywords = []config.Keyword{
	{Term: "quiet", Factor: "quiet", Weight: 3.0},
	{Term: "quietly", Factor: "quiet", Weight: 3.0},
	{Term: "calm", Factor: "quiet", Weight: 2.0},
	{Term: "peaceful", Factor: "quiet", Weight: 2.5},
	{Term: "noise", Factor: "noise", Weight: -2.5},
	{Term: "noisy", Factor: "noise", Weight: -3.0},
	{Term: "loud", Factor: "noise", Weight: -3.0},
	{Term: "wifi", Factor: "wifi", Weight: 3.0},
	{Term: "wi-fi", Factor: "wifi", Weight: 3.0},
	{Term: "internet", Factor: "wifi", Weight: 2.5},
	{Term: "connection", Factor: "wifi", Weight: 1.5},
	{Term: "outlet", Factor: "outlet", Weight: 3.0},
	{Term: "outlets", Factor: "outlet", Weight: 3.0},
	{Term: "plug", Factor: "outlet", Weight: 2.5},
	{Term: "plugged", Factor: "outlet", Weight: 2.5},
	{Term: "power", Factor: "outlet", Weight: 1.5},
	{Term: "comfortable", Factor: "comfort", Weight: 2.5},
	{Term: "comfort", Factor: "comfort", Weight: 2.0},
	{Term: "seat", Factor: "comfort", Weight: 1.5},
	{Term: "seating", Factor: "comfort", Weight: 1.5},
	{Term: "chair", Factor: "comfort", Weight: 1.5},
	{Term: "chairs", Factor: "comfort", Weight: 1.5},
	{Term: "ergonomic", Factor: "comfort", Weight: 2.5},
	{Term: "cozy", Factor: "comfort", Weight: 1.5},
	{Term: "lighting", Factor: "lighting", Weight: 2.0},
	{Term: "bright", Factor: "lighting", Weight: 1.5},
	{Term: "well-lit", Factor: "lighting", Weight: 2.0},
	{Term: "dim", Factor: "lighting", Weight: -1.0},
	{Term: "dark", Factor: "lighting", Weight: -1.5},
	{Term: "study", Factor: "study", Weight: 3.0},
	{Term: "focus", Factor: "study", Weight: 2.5},
	{Term: "focused", Factor: "study", Weight: 2.5},
	{Term: "productive", Factor: "study", Weight: 2.5},
	{Term: "productivity", Factor: "study", Weight: 2.0},
	{Term: "laptop", Factor: "laptop", Weight: 2.5},
	{Term: "laptops", Factor: "laptop", Weight: 2.5},
	{Term: "work", Factor: "work", Weight: 2.0},
	{Term: "workspace", Factor: "work", Weight: 2.5},
	{Term: "desk", Factor: "work", Weight: 2.0},
	{Term: "table", Factor: "tables", Weight: 1.5},
	{Term: "tables", Factor: "tables", Weight: 1.5},
	{Term: "restroom", Factor: "amenities", Weight: 0.5},
	{Term: "bathroom", Factor: "amenities", Weight: 0.5},
	{Term: "outdoor", Factor: "outdoor", Weight: 0.5},
	{Term: "friendly", Factor: "staff", Weight: 1.0},
	{Term: "helpful", Factor: "staff", Weight: 1.0},
	{Term: "rude", Factor: "staff", Weight: -1.5},
	{Term: "crowded", Factor: "crowded", Weight: -2.5},
	{Term: "busy", Factor: "crowded", Weight: -1.5},
	{Term: "packed", Factor: "crowded", Weight: -2.0},
	{Term: "empty", Factor: "crowded", Weight: 1.0},
	{Term: "coffee", Factor: "coffee", Weight: 0.5},
	{Term: "kids", Factor: "family", Weight: -1.5},
	{Term: "children", Factor: "family", Weight: -1.5},
	{Term: "cold", Factor: "temperature", Weight: -0.5},
	{Term: "hot", Factor: "temperature", Weight: -0.5},
	{Term: "24/7", Factor: "hours", Weight: 1.0},
	{Term: "open-late", Factor: "hours", Weight: 0.5},
	{Term: "hours", Factor: "hours", Weight: 0.2},
	{Term: "reservations", Factor: "reservations", Weight: 0.5},
	{Term: "parking", Factor: "parking", Weight: 0.2},
}

// NewTable builds a lookup table from keyword entries. Entries whose term
// normalizes to nothing are skipped; an entry without a factor counts toward
// a factor named after its own term.
func NewTable(entries []config.Keyword) Table {
	t := make(Table, len(entries))
	for _, e := range entries {
		lemmas := nlp.Normalize(e.Term)
		if len(lemmas) != 1 {
			continue
		}
		factor := e.Factor
		if factor == "" {
			factor = e.Term
		}
		t[lemmas[0]] = Keyword{Factor: factor, Weight: e.Weight}
	}
	return t
}

// DefaultTable returns the built-in study-suitability vocabulary.
func DefaultTable() Table {
	return NewTable(defaultKeywords)
}

// Match scans tokenized review text for keyword lemmas. Matching is exact on
// lemma equality; no partial or fuzzy matching. An empty result is not an
// error.
func (t Table) Match(tokens []nlp.Token) MatchResult {
	var matches MatchResult
	for _, tok := range tokens {
		kw, ok := t[tok.Lemma]
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Term:   tok.Lemma,
			Factor: kw.Factor,
			Weight: kw.Weight,
			Start:  tok.Start,
			End:    tok.End,
		})
	}
	return matches
}
