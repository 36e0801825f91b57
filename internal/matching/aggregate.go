package matching

// Default weights for combining component scores
const (
	defaultSkillWeight      = 0.7
	defaultExperienceWeight = 0.3
)

// Weights controls how the component scores combine into the overall score.
// The two weights must be non-negative and sum to 1.
type Weights struct {
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
}

// DefaultWeights returns the standard 70/30 skill/experience split.
func DefaultWeights() Weights {
	return Weights{Skill: defaultSkillWeight, Experience: defaultExperienceWeight}
}

// Valid reports whether the weights are non-negative and sum to 1 within
// floating point tolerance.
func (w Weights) Valid() bool {
	if w.Skill < 0 || w.Experience < 0 {
		return false
	}
	sum := w.Skill + w.Experience
	return sum > 0.999 && sum < 1.001
}

// Aggregate combines the skill and experience component scores into a single
// overall score, clamped to the 0-100 range.
func Aggregate(skillScore, experienceScore float64, w Weights) float64 {
	overall := w.Skill*skillScore + w.Experience*experienceScore
	if overall > 100.0 {
		overall = 100.0
	}
	if overall < 0.0 {
		overall = 0.0
	}
	return overall
}
