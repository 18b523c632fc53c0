package scorer

import (
	"strings"
	"testing"
	"time"

	"github.com/mkarlsen/focusplaces/internal/nlp"
)

func signalFor(t *testing.T, index int, text string, reviewedAt *time.Time) reviewSignal {
	t.Helper()
	table := DefaultTable()
	return reviewSignal{
		index:      index,
		text:       text,
		reviewedAt: reviewedAt,
		matches:    table.Match(nlp.Tokenize(text)),
	}
}

func TestExcerptsVerbatim(t *testing.T) {
	text := "The upstairs room is wonderfully quiet in the mornings and the wifi never drops."
	sig := signalFor(t, 0, text, nil)

	excerpts := extractExcerpts([]reviewSignal{sig}, 10, 30)
	if len(excerpts) == 0 {
		t.Fatal("expected excerpts for a review with matches")
	}
	for _, e := range excerpts {
		core := strings.TrimSuffix(strings.TrimPrefix(e.Text, "..."), "...")
		if !strings.Contains(text, core) {
			t.Errorf("excerpt %q is not verbatim from the source text", e.Text)
		}
	}
}

func TestExcerptsCap(t *testing.T) {
	text := "Quiet room, great wifi, many outlets, comfortable chairs, bright lighting."
	sig := signalFor(t, 0, text, nil)

	excerpts := extractExcerpts([]reviewSignal{sig}, 2, 20)
	if len(excerpts) > 2 {
		t.Errorf("excerpt count %d exceeds cap 2", len(excerpts))
	}
}

func TestExcerptsDeduplicateFactorPerReview(t *testing.T) {
	text := "Quiet, so quiet, unbelievably quiet."
	sig := signalFor(t, 0, text, nil)

	excerpts := extractExcerpts([]reviewSignal{sig}, 10, 40)
	if len(excerpts) != 1 {
		t.Errorf("expected one excerpt for a factor repeated in one review, got %d", len(excerpts))
	}
}

func TestExcerptsPreferRecentReviews(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	signals := []reviewSignal{
		signalFor(t, 0, "Nice quiet corner here.", &older),
		signalFor(t, 1, "The wifi is excellent.", &newer),
	}

	excerpts := extractExcerpts(signals, 1, 30)
	if len(excerpts) != 1 {
		t.Fatalf("expected exactly 1 excerpt, got %d", len(excerpts))
	}
	if excerpts[0].Keyword != "wifi" {
		t.Errorf("expected the newer review's match first, got %q", excerpts[0].Keyword)
	}
}

func TestExcerptsEmptyWhenNoMatches(t *testing.T) {
	sig := signalFor(t, 0, "Lovely pastries.", nil)
	if got := extractExcerpts([]reviewSignal{sig}, 5, 30); len(got) != 0 {
		t.Errorf("expected no excerpts, got %v", got)
	}
}

func TestExcerptAroundEllipses(t *testing.T) {
	text := "one two three four five quiet six seven eight nine ten"
	start := strings.Index(text, "quiet")
	got := excerptAround(text, start, start+len("quiet"), 10)

	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipses on both sides, got %q", got)
	}
	if !strings.Contains(got, "quiet") {
		t.Errorf("excerpt lost the match itself: %q", got)
	}
}

func TestExcerptAroundWholeText(t *testing.T) {
	text := "quiet spot"
	got := excerptAround(text, 0, 5, 40)
	if got != "quiet spot" {
		t.Errorf("expected the whole text untouched, got %q", got)
	}
}
