// Package parsing normalizes the loosely shaped records produced by the
// external structuring collaborator into the strict shapes the scoring core
// consumes. All shape probing happens here, once, at the system boundary;
// downstream code never branches on how a payload arrived.
package parsing

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// jobPayload mirrors the field variants the structuring collaborator has been
// observed to emit for job descriptions.
type jobPayload struct {
	Title              string          `json:"title"`
	JobTitle           string          `json:"job_title"`
	ExperienceRequired json.RawMessage `json:"experience_required"`
	RequiredExperience json.RawMessage `json:"required_experience"`
	Skills             json.RawMessage `json:"skills"`
	PrimarySkills      []string        `json:"primary_skills"`
	SecondarySkills    []string        `json:"secondary_skills"`
	SkillsWeightage    map[string]int  `json:"skills_weightage"`
}

// candidatePayload mirrors the field variants emitted for resumes.
type candidatePayload struct {
	Identifier           string          `json:"identifier"`
	ID                   string          `json:"id"`
	Filename             string          `json:"filename"`
	Name                 string          `json:"name"`
	Email                string          `json:"email"`
	Phone                string          `json:"phone"`
	Links                []string        `json:"links"`
	LinkedIn             string          `json:"linkedin"`
	GitHub               string          `json:"github"`
	TotalExperienceYears json.RawMessage `json:"total_experience_years"`
	TotalExperience      json.RawMessage `json:"total_experience"`
	ExperienceYears      json.RawMessage `json:"experience_years"`
	Skills               []string        `json:"skills"`
}

var (
	yearsRangePattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:to|[-–])\s*(\d+(?:\.\d+)?)\s*(?:\+\s*)?(?:years?|yrs?)?`)
	yearsSinglePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)?`)
)

// IngestJob normalizes a structured job description payload into a strict
// JobRequirement. Skills without explicit weights receive defaultWeight;
// duplicate skill names are deduplicated keeping the highest weight.
func IngestJob(payload []byte, defaultWeight int) (*types.JobRequirement, error) {
	var raw jobPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &IngestError{Message: "malformed job payload", Cause: err}
	}

	job := &types.JobRequirement{Title: raw.Title}
	if job.Title == "" {
		job.Title = raw.JobTitle
	}
	if job.Title == "" {
		return nil, &FieldError{Field: "title", Message: "job title is required"}
	}

	expRaw := raw.RequiredExperience
	if len(expRaw) == 0 {
		expRaw = raw.ExperienceRequired
	}
	job.RequiredExperience = parseExperienceRequirement(expRaw)

	job.Skills = parseJobSkills(&raw, defaultWeight)
	return job, nil
}

// IngestCandidate normalizes a structured resume payload into a strict
// CandidateProfile. Missing contact fields are tolerated; a missing
// identifier is not.
func IngestCandidate(payload []byte) (*types.CandidateProfile, error) {
	var raw candidatePayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &IngestError{Message: "malformed candidate payload", Cause: err}
	}

	identifier := firstNonEmpty(raw.Identifier, raw.Filename, raw.ID)
	if identifier == "" {
		return nil, &FieldError{Field: "identifier", Message: "candidate identifier is required"}
	}

	profile := &types.CandidateProfile{
		Identifier: identifier,
		Name:       raw.Name,
		Email:      raw.Email,
		Phone:      raw.Phone,
		Links:      raw.Links,
	}
	if raw.LinkedIn != "" {
		profile.Links = append(profile.Links, raw.LinkedIn)
	}
	if raw.GitHub != "" {
		profile.Links = append(profile.Links, raw.GitHub)
	}

	for _, field := range []json.RawMessage{raw.TotalExperienceYears, raw.TotalExperience, raw.ExperienceYears} {
		if years, ok := parseYearsValue(field); ok {
			profile.TotalExperienceYears = &years
			break
		}
	}

	for _, skill := range raw.Skills {
		if strings.TrimSpace(skill) != "" {
			profile.Skills = append(profile.Skills, skill)
		}
	}

	return profile, nil
}

// parseExperienceRequirement accepts an object ({"min": 3, "max": 5}), a bare
// number, or a free-text band ("3+ years", "2-5 years"). Returns nil when the
// payload carries no usable threshold.
func parseExperienceRequirement(raw json.RawMessage) *types.ExperienceRequirement {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var obj struct {
		Min      *float64 `json:"min"`
		Max      *float64 `json:"max"`
		MinYears *float64 `json:"min_years"`
		MaxYears *float64 `json:"max_years"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		min := obj.Min
		if min == nil {
			min = obj.MinYears
		}
		max := obj.Max
		if max == nil {
			max = obj.MaxYears
		}
		if min != nil && *min > 0 {
			return &types.ExperienceRequirement{MinYears: *min, MaxYears: max}
		}
		if min != nil {
			return nil
		}
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num <= 0 {
			return nil
		}
		return &types.ExperienceRequirement{MinYears: num}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return parseExperienceText(text)
	}

	return nil
}

// parseExperienceText extracts an experience band from free text.
// A range like "2-5 years" yields both bounds; "3+ years" yields a minimum.
func parseExperienceText(text string) *types.ExperienceRequirement {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	if m := yearsRangePattern.FindStringSubmatch(text); m != nil {
		min, errMin := strconv.ParseFloat(m[1], 64)
		max, errMax := strconv.ParseFloat(m[2], 64)
		if errMin == nil && errMax == nil && min > 0 {
			return &types.ExperienceRequirement{MinYears: min, MaxYears: &max}
		}
	}
	if m := yearsSinglePattern.FindStringSubmatch(text); m != nil {
		min, err := strconv.ParseFloat(m[1], 64)
		if err == nil && min > 0 {
			return &types.ExperienceRequirement{MinYears: min}
		}
	}
	return nil
}

// parseJobSkills builds the weighted skill list from whichever variant the
// payload used: an explicit [{name, weight}] list, a weightage map, or plain
// primary/secondary skill name lists (which receive defaultWeight).
func parseJobSkills(raw *jobPayload, defaultWeight int) []types.WeightedSkill {
	var skills []types.WeightedSkill

	if len(raw.Skills) > 0 {
		var weighted []types.WeightedSkill
		if err := json.Unmarshal(raw.Skills, &weighted); err == nil && len(weighted) > 0 && weighted[0].Name != "" {
			skills = weighted
		} else {
			var names []string
			if err := json.Unmarshal(raw.Skills, &names); err == nil {
				for _, name := range names {
					skills = append(skills, types.WeightedSkill{Name: name, Weight: defaultWeight})
				}
			}
		}
	}

	if len(skills) == 0 {
		for _, name := range raw.PrimarySkills {
			skills = append(skills, types.WeightedSkill{Name: name, Weight: defaultWeight})
		}
		for _, name := range raw.SecondarySkills {
			skills = append(skills, types.WeightedSkill{Name: name, Weight: defaultWeight})
		}
	}

	// Explicit weightage overrides whatever the list carried.
	if len(raw.SkillsWeightage) > 0 {
		byName := make(map[string]int, len(raw.SkillsWeightage))
		for name, weight := range raw.SkillsWeightage {
			byName[NormalizeSkillName(name)] = weight
		}
		for i := range skills {
			if weight, ok := byName[NormalizeSkillName(skills[i].Name)]; ok {
				skills[i].Weight = weight
			}
		}
	}

	for i := range skills {
		if skills[i].Weight <= 0 {
			skills[i].Weight = defaultWeight
		}
	}

	return DedupeWeightedSkills(skills)
}

// parseYearsValue accepts a JSON number or a numeric string ("5", "5 years").
func parseYearsValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num < 0 {
			num = 0
		}
		return num, true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if m := yearsSinglePattern.FindStringSubmatch(strings.ToLower(text)); m != nil {
			if years, err := strconv.ParseFloat(m[1], 64); err == nil {
				return years, true
			}
		}
	}
	return 0, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
