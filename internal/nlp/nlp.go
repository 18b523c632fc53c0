package nlp

import (
	"strings"
	"unicode"
)

// Token is one word of review text: the normalized lemma plus the byte span
// of the surface form in the original string, so matches can be excerpted
// verbatim later.
type Token struct {
	Lemma string
	Start int
	End   int
	Stop  bool
}

// Tokenize splits text into word tokens, keeping hyphens and slashes inside
// words ("well-lit", "24/7" stay single tokens). Stop-words are kept here so
// callers can count content length; Normalize filters them out.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := strings.ToLower(text[start:end])
		tokens = append(tokens, Token{
			Lemma: Lemma(word),
			Start: start,
			End:   end,
			Stop:  IsStopWord(word),
		})
		start = -1
	}

	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '/' {
			if start < 0 {
				start = i
			}
		} else {
			flush(i)
		}
	}
	flush(len(text))

	return tokens
}

// Normalize turns raw review text into an ordered sequence of lowercase
// lemmas with stop-words removed. Empty input yields an empty slice.
func Normalize(text string) []string {
	tokens := Tokenize(text)
	lemmas := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Stop {
			continue
		}
		lemmas = append(lemmas, t.Lemma)
	}
	return lemmas
}

// Lemma reduces a lowercase word to a base form with simple suffix rules.
// This is intentionally light: it only needs to make inflected forms of the
// keyword vocabulary (plurals, -ing, -ed) land on the same lemma.
func Lemma(word string) string {
	if len(word) > 4 && strings.HasSuffix(word, "ies") {
		return word[:len(word)-3] + "y"
	}
	if len(word) > 3 && strings.HasSuffix(word, "es") {
		stem := word[:len(word)-2]
		switch {
		case strings.HasSuffix(stem, "s"), strings.HasSuffix(stem, "x"),
			strings.HasSuffix(stem, "z"), strings.HasSuffix(stem, "ch"),
			strings.HasSuffix(stem, "sh"):
			return stem
		}
	}
	if len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return word[:len(word)-1]
	}
	if len(word) > 5 && strings.HasSuffix(word, "ing") {
		stem := word[:len(word)-3]
		if n := len(stem); n > 2 && stem[n-1] == stem[n-2] {
			stem = stem[:n-1] // sitting -> sit
		}
		return stem
	}
	if len(word) > 4 && strings.HasSuffix(word, "ed") {
		return word[:len(word)-2]
	}
	return word
}
