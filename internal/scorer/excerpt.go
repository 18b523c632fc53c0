package scorer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Excerpt is a verbatim snippet of review text around one keyword match,
// used for explainability.
type Excerpt struct {
	Keyword string  `json:"keyword"`
	Weight  float64 `json:"weight"`
	Text    string  `json:"text"`
}

// extractExcerpts selects up to maxExcerpts snippets across a place's
// reviews. More recent reviews are preferred, ties broken by position in the
// provider's review list. Within one review, each canonical factor is
// excerpted at most once. Snippets are cut from the original text, never
// fabricated.
func extractExcerpts(signals []reviewSignal, maxExcerpts, contextChars int) []Excerpt {
	order := make([]int, len(signals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := signals[order[i]], signals[order[j]]
		switch {
		case a.reviewedAt == nil && b.reviewedAt == nil:
			return a.index < b.index
		case a.reviewedAt == nil:
			return false
		case b.reviewedAt == nil:
			return true
		case !a.reviewedAt.Equal(*b.reviewedAt):
			return a.reviewedAt.After(*b.reviewedAt)
		}
		return a.index < b.index
	})

	var excerpts []Excerpt
	for _, idx := range order {
		s := signals[idx]
		seen := make(map[string]struct{})
		for _, m := range s.matches {
			if len(excerpts) >= maxExcerpts {
				return excerpts
			}
			if _, dup := seen[m.Factor]; dup {
				continue
			}
			seen[m.Factor] = struct{}{}
			excerpts = append(excerpts, Excerpt{
				Keyword: m.Term,
				Weight:  m.Weight,
				Text:    excerptAround(s.text, m.Start, m.End, contextChars),
			})
		}
	}
	return excerpts
}

// excerptAround cuts a window of contextChars bytes on each side of the
// match, trimmed to whole-word boundaries, with ellipses marking truncation.
func excerptAround(text string, start, end, contextChars int) string {
	s := start - contextChars
	if s < 0 {
		s = 0
	}
	e := end + contextChars
	if e > len(text) {
		e = len(text)
	}

	// Never split a word or a rune at the cut points.
	if s > 0 {
		for s < start && !utf8.RuneStart(text[s]) {
			s++
		}
		if i := strings.IndexByte(text[s:start], ' '); i >= 0 {
			s += i + 1
		}
	}
	if e < len(text) {
		for e > end && !utf8.RuneStart(text[e]) {
			e--
		}
		if i := strings.LastIndexByte(text[end:e], ' '); i >= 0 {
			e = end + i
		}
	}

	out := strings.TrimSpace(text[s:e])
	if s > 0 {
		out = "..." + out
	}
	if e < len(text) {
		out = out + "..."
	}
	return out
}
