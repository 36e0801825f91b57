package matching

import (
	"github.com/jonathan/candidate-ranker/internal/parsing"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// MatchSkills computes the weighted skill overlap between a job's required
// skills and a candidate's skill list, on a 0-100 scale. Names on both sides
// are compared in normalized form. Returns the score plus the matched and
// missing requirement entries, preserving the job's display names.
//
// A job with no weighted skills (or only zero-weight skills after
// deduplication) constrains nothing, so every candidate scores 100.
func MatchSkills(jobSkills []types.WeightedSkill, candidateSkills []string) (float64, []types.WeightedSkill, []types.WeightedSkill) {
	required := parsing.DedupeWeightedSkills(jobSkills)

	totalWeight := 0
	for _, skill := range required {
		totalWeight += skill.Weight
	}
	if totalWeight <= 0 {
		return 100.0, nil, nil
	}

	candidateSet := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		normalized := parsing.NormalizeSkillName(skill)
		if normalized != "" {
			candidateSet[normalized] = true
		}
	}

	matchedWeight := 0
	matched := make([]types.WeightedSkill, 0, len(required))
	missing := make([]types.WeightedSkill, 0)
	for _, skill := range required {
		if candidateSet[parsing.NormalizeSkillName(skill.Name)] {
			matchedWeight += skill.Weight
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	score := 100.0 * float64(matchedWeight) / float64(totalWeight)
	if score > 100.0 {
		score = 100.0
	}
	return score, matched, missing
}
