package scorer

import "time"

// unknownAgeWeight is the recency weight for reviews without a timestamp:
// they contribute no keyword signal but still count toward review volume.
const unknownAgeWeight = 0.0

// recencyWeight converts a review's age into a decay weight in [0,1]. The
// decay is linear: 1.0 at age zero down to 0.0 at the window edge, and 0.0
// beyond it, so the function is continuous at the boundary. Reviews dated in
// the future are treated as age zero.
func recencyWeight(reviewedAt *time.Time, now time.Time, windowDays int) float64 {
	if reviewedAt == nil {
		return unknownAgeWeight
	}
	age := now.Sub(*reviewedAt)
	if age < 0 {
		return 1.0
	}
	window := time.Duration(windowDays) * 24 * time.Hour
	if age >= window {
		return 0.0
	}
	return 1.0 - float64(age)/float64(window)
}

// isRecent reports whether a review falls inside the recency window and so
// counts toward the reliability threshold. Reviews without a timestamp never
// count as recent.
func isRecent(reviewedAt *time.Time, now time.Time, windowDays int) bool {
	if reviewedAt == nil {
		return false
	}
	return now.Sub(*reviewedAt) <= time.Duration(windowDays)*24*time.Hour
}
