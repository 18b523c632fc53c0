package scorer

import "math"

// neutralScore is the midpoint returned for reviews with no text or no
// keyword matches.
const neutralScore = 50.0

// reviewScore maps one review's matches to a 0-100 score. The raw signed
// weight sum is normalized by log1p of the review's word count so long
// rambling reviews don't dominate, then squashed through a sigmoid centred
// on the neutral midpoint.
func reviewScore(matches MatchResult, wordCount int, steepness float64) float64 {
	if wordCount == 0 || len(matches) == 0 {
		return neutralScore
	}

	var raw float64
	for _, m := range matches {
		raw += m.Weight
	}

	normalized := raw / math.Log1p(float64(wordCount))
	score := 100.0 / (1.0 + math.Exp(-steepness*normalized))
	return math.Min(100.0, math.Max(0.0, score))
}

// aggregate blends the recency-weighted keyword signal with the provider
// rating into one focus score.
//
// The keyword component is the recency-weighted mean of per-review scores
// over reviews that matched at least one keyword, so it stays on the 0-100
// scale regardless of review count. Reviews with no matches carry no signal
// either way. When no signal exists at all (no reviews, no matches, all too
// old, or all undated) the place still gets a rating-only score rather than
// being dropped, and KeywordMissing is set so the caller can tell.
// When the provider rating is absent the keyword component carries the full
// blend and RatingMissing is set; the blend is never renormalized against a
// zero sum.
//
// Factor tallies count every match regardless of review age, matching the
// excerpts: undated or stale reviews cannot move the score but their
// evidence is still reported.
func (e *Engine) aggregate(place Place, signals []reviewSignal) *Breakdown {
	b := &Breakdown{
		PlaceID: place.ID,
		Name:    place.Name,
	}

	var weightedSum, weightTotal float64
	for _, s := range signals {
		if len(s.matches) == 0 {
			continue
		}
		weightedSum += s.score * s.weight
		weightTotal += s.weight
		for _, m := range s.matches {
			if m.Weight >= 0 {
				if b.PositiveFactors == nil {
					b.PositiveFactors = make(map[string]int)
				}
				b.PositiveFactors[m.Factor]++
			} else {
				if b.NegativeFactors == nil {
					b.NegativeFactors = make(map[string]int)
				}
				b.NegativeFactors[m.Factor]++
			}
		}
	}

	hasKeyword := weightTotal > 0
	if hasKeyword {
		b.KeywordComponent = weightedSum / weightTotal
	} else {
		b.KeywordMissing = true
	}

	hasRating := place.Rating != nil
	if hasRating {
		b.RatingComponent = *place.Rating * 20.0 // 0-5 -> 0-100
	} else {
		b.RatingMissing = true
	}

	switch {
	case hasRating && hasKeyword:
		b.FocusScore = e.scoring.RatingWeight*b.RatingComponent + e.scoring.KeywordWeight*b.KeywordComponent
	case hasRating:
		b.FocusScore = b.RatingComponent
	case hasKeyword:
		b.FocusScore = b.KeywordComponent
	default:
		b.FocusScore = 0
	}

	return b
}
