// Package types provides type definitions for structured data used throughout the candidate-ranker system.
package types

// ExperienceRequirement represents the experience band a job asks for, in years.
// Max is optional; a zero Min means no experience threshold.
type ExperienceRequirement struct {
	MinYears float64  `json:"min_years"`
	MaxYears *float64 `json:"max_years,omitempty"`
}

// WeightedSkill represents a required skill with its recruiter-assigned weight (1-100).
type WeightedSkill struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// JobRequirement represents a structured job description after boundary normalization.
// Skills preserve the recruiter's ordering; names are unique after skill normalization.
type JobRequirement struct {
	Title              string                 `json:"title"`
	RequiredExperience *ExperienceRequirement `json:"required_experience,omitempty"`
	Skills             []WeightedSkill        `json:"skills"`
}

// CandidateProfile represents a structured resume after boundary normalization.
// Contact fields are best-effort; their absence never blocks scoring.
type CandidateProfile struct {
	Identifier           string   `json:"identifier"`
	Name                 string   `json:"name,omitempty"`
	Email                string   `json:"email,omitempty"`
	Phone                string   `json:"phone,omitempty"`
	Links                []string `json:"links,omitempty"`
	TotalExperienceYears *float64 `json:"total_experience_years,omitempty"`
	Skills               []string `json:"skills"`
}

// MatchResult is the scored outcome for a single candidate within a ranking run.
type MatchResult struct {
	CandidateIdentifier string          `json:"candidate_identifier"`
	CandidateName       string          `json:"candidate_name,omitempty"`
	Rank                int             `json:"rank"`
	OverallScore        float64         `json:"overall_score"`
	SkillMatchScore     float64         `json:"skill_match_score"`
	ExperienceScore     float64         `json:"experience_score"`
	MatchedSkills       []WeightedSkill `json:"matched_skills"`
	MissingSkills       []WeightedSkill `json:"missing_skills"`
	// ExperienceDetected is false when the candidate record carried no usable
	// experience figure and 0 years was assumed for scoring.
	ExperienceDetected bool `json:"experience_detected"`
}

// FailedCandidate records a candidate whose scoring failed without aborting the batch.
type FailedCandidate struct {
	CandidateIdentifier string `json:"candidate_identifier"`
	Reason              string `json:"reason"`
}

// RankingOutcome is the result of one complete matching run over a session's candidates.
type RankingOutcome struct {
	Ranked              []MatchResult     `json:"ranked"`
	Failed              []FailedCandidate `json:"failed"`
	TotalAttempted      int               `json:"total_attempted"`
	SuccessfullyMatched int               `json:"successfully_matched"`
	// Partial is true when the run was cancelled before every candidate was
	// attempted; Ranked then covers only the completed portion.
	Partial bool `json:"partial,omitempty"`
}

// TopCandidate returns the highest-ranked result, or nil for an empty ranking.
func (o *RankingOutcome) TopCandidate() *MatchResult {
	if len(o.Ranked) == 0 {
		return nil
	}
	return &o.Ranked[0]
}

// AverageScore returns the mean overall score across ranked candidates (0 when empty).
func (o *RankingOutcome) AverageScore() float64 {
	if len(o.Ranked) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range o.Ranked {
		total += r.OverallScore
	}
	return total / float64(len(o.Ranked))
}
