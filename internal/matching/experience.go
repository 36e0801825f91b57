// Package matching scores candidate profiles against job requirements and
// ranks batches of candidates.
package matching

import "github.com/jonathan/candidate-ranker/internal/types"

// ScoreExperience computes the experience component score on a 0-100 scale.
// The second return value reports whether the candidate's experience was
// actually detected; a missing value scores zero rather than being skipped,
// so undisclosed experience never outranks disclosed experience.
//
// A job with no experience requirement (or a zero-year minimum) is a free
// pass for every candidate. Meeting the minimum earns the full score; there
// is no penalty for exceeding it. Below the minimum the score scales
// linearly with years held.
func ScoreExperience(req *types.ExperienceRequirement, years *float64) (float64, bool) {
	detected := years != nil

	if req == nil || req.MinYears <= 0 {
		return 100.0, detected
	}

	if !detected {
		return 0.0, false
	}

	held := *years
	if held >= req.MinYears {
		return 100.0, true
	}
	if held <= 0 {
		return 0.0, true
	}

	score := 100.0 * held / req.MinYears
	if score > 100.0 {
		score = 100.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score, true
}
