package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func yearsPtr(v float64) *float64 { return &v }

func TestScoreExperienceNoRequirement(t *testing.T) {
	score, detected := ScoreExperience(nil, yearsPtr(2))

	assert.Equal(t, 100.0, score)
	assert.True(t, detected)
}

func TestScoreExperienceZeroMinimumIsFreePass(t *testing.T) {
	req := &types.ExperienceRequirement{MinYears: 0}

	score, detected := ScoreExperience(req, nil)

	assert.Equal(t, 100.0, score)
	assert.False(t, detected)
}

func TestScoreExperienceUndetectedScoresZero(t *testing.T) {
	req := &types.ExperienceRequirement{MinYears: 3}

	score, detected := ScoreExperience(req, nil)

	assert.Equal(t, 0.0, score)
	assert.False(t, detected)
}

func TestScoreExperienceMeetsMinimum(t *testing.T) {
	req := &types.ExperienceRequirement{MinYears: 3}

	score, detected := ScoreExperience(req, yearsPtr(3))

	assert.Equal(t, 100.0, score)
	assert.True(t, detected)
}

func TestScoreExperienceNoOverqualificationPenalty(t *testing.T) {
	req := &types.ExperienceRequirement{MinYears: 3}

	score, _ := ScoreExperience(req, yearsPtr(15))

	assert.Equal(t, 100.0, score)
}

func TestScoreExperienceBelowMinimumScalesLinearly(t *testing.T) {
	req := &types.ExperienceRequirement{MinYears: 3}

	score, detected := ScoreExperience(req, yearsPtr(1))

	assert.InDelta(t, 33.333, score, 0.01)
	assert.True(t, detected)
}

func TestScoreExperienceZeroYearsHeld(t *testing.T) {
	req := &types.ExperienceRequirement{MinYears: 3}

	score, detected := ScoreExperience(req, yearsPtr(0))

	assert.Equal(t, 0.0, score)
	assert.True(t, detected)
}

func TestScoreExperienceFractionalYears(t *testing.T) {
	req := &types.ExperienceRequirement{MinYears: 4}

	score, _ := ScoreExperience(req, yearsPtr(2.5))

	assert.InDelta(t, 62.5, score, 0.001)
}
