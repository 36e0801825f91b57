package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func backendJob() *types.JobRequirement {
	return &types.JobRequirement{
		Title:              "Backend Engineer",
		RequiredExperience: &types.ExperienceRequirement{MinYears: 3},
		Skills: []types.WeightedSkill{
			{Name: "Python", Weight: 50},
			{Name: "SQL", Weight: 50},
		},
	}
}

func TestScoreCandidateFullMatch(t *testing.T) {
	candidate := &types.CandidateProfile{
		Identifier:           "cand_a",
		Name:                 "Alice",
		TotalExperienceYears: yearsPtr(5),
		Skills:               []string{"Python", "SQL"},
	}

	result, err := ScoreCandidate(backendJob(), candidate, DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.OverallScore)
	assert.Equal(t, 100.0, result.SkillMatchScore)
	assert.Equal(t, 100.0, result.ExperienceScore)
	assert.True(t, result.ExperienceDetected)
}

func TestScoreCandidatePartialMatch(t *testing.T) {
	candidate := &types.CandidateProfile{
		Identifier:           "cand_b",
		TotalExperienceYears: yearsPtr(1),
		Skills:               []string{"Python"},
	}

	result, err := ScoreCandidate(backendJob(), candidate, DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.SkillMatchScore)
	assert.InDelta(t, 33.333, result.ExperienceScore, 0.01)
	assert.InDelta(t, 45.0, result.OverallScore, 0.01)
}

func TestScoreCandidateJobWithoutSkills(t *testing.T) {
	job := &types.JobRequirement{
		Title:              "Manager",
		RequiredExperience: &types.ExperienceRequirement{MinYears: 5},
	}
	candidate := &types.CandidateProfile{
		Identifier: "cand_c",
		Skills:     []string{"Leadership"},
	}

	result, err := ScoreCandidate(job, candidate, DefaultWeights())
	require.NoError(t, err)

	// Skill component is a free pass; undisclosed experience scores zero.
	assert.Equal(t, 100.0, result.SkillMatchScore)
	assert.Equal(t, 0.0, result.ExperienceScore)
	assert.InDelta(t, 70.0, result.OverallScore, 0.001)
}

func TestScoreCandidateMissingIdentifier(t *testing.T) {
	candidate := &types.CandidateProfile{Skills: []string{"Python"}}

	_, err := ScoreCandidate(backendJob(), candidate, DefaultWeights())

	require.Error(t, err)
	var candErr *CandidateError
	assert.ErrorAs(t, err, &candErr)
}

func TestRunMatchingRanksBestFirst(t *testing.T) {
	candidates := []*types.CandidateProfile{
		{Identifier: "cand_b", TotalExperienceYears: yearsPtr(1), Skills: []string{"Python"}},
		{Identifier: "cand_a", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
	}

	outcome, err := RunMatching(context.Background(), backendJob(), candidates, Options{})
	require.NoError(t, err)

	require.Len(t, outcome.Ranked, 2)
	assert.Equal(t, "cand_a", outcome.Ranked[0].CandidateIdentifier)
	assert.Equal(t, 1, outcome.Ranked[0].Rank)
	assert.Equal(t, "cand_b", outcome.Ranked[1].CandidateIdentifier)
	assert.Equal(t, 2, outcome.Ranked[1].Rank)
	assert.Equal(t, 2, outcome.TotalAttempted)
	assert.Equal(t, 2, outcome.SuccessfullyMatched)
	assert.False(t, outcome.Partial)
}

func TestRunMatchingRecoversFromFailedCandidate(t *testing.T) {
	candidates := []*types.CandidateProfile{
		{Identifier: "cand_a", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
		{Skills: []string{"Python"}}, // no identifier
		{Identifier: "cand_c", TotalExperienceYears: yearsPtr(4), Skills: []string{"SQL"}},
	}

	outcome, err := RunMatching(context.Background(), backendJob(), candidates, Options{})
	require.NoError(t, err)

	assert.Len(t, outcome.Ranked, 2)
	require.Len(t, outcome.Failed, 1)
	assert.Equal(t, 3, outcome.TotalAttempted)
	assert.Equal(t, 2, outcome.SuccessfullyMatched)
	assert.NotEmpty(t, outcome.Failed[0].Reason)
}

func TestRunMatchingTieBreaksOnIdentifier(t *testing.T) {
	candidates := []*types.CandidateProfile{
		{Identifier: "zeta", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
		{Identifier: "alpha", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
	}

	outcome, err := RunMatching(context.Background(), backendJob(), candidates, Options{})
	require.NoError(t, err)

	require.Len(t, outcome.Ranked, 2)
	assert.Equal(t, "alpha", outcome.Ranked[0].CandidateIdentifier)
	assert.Equal(t, "zeta", outcome.Ranked[1].CandidateIdentifier)
}

func TestRunMatchingNoCandidates(t *testing.T) {
	_, err := RunMatching(context.Background(), backendJob(), nil, Options{})

	require.Error(t, err)
	var preErr *PreconditionError
	assert.ErrorAs(t, err, &preErr)
}

func TestRunMatchingNothingToScore(t *testing.T) {
	job := &types.JobRequirement{Title: "Empty Job"}
	candidates := []*types.CandidateProfile{{Identifier: "cand_a", Skills: []string{"Python"}}}

	_, err := RunMatching(context.Background(), job, candidates, Options{})

	require.Error(t, err)
	var preErr *PreconditionError
	assert.ErrorAs(t, err, &preErr)
}

func TestRunMatchingInvalidWeights(t *testing.T) {
	candidates := []*types.CandidateProfile{{Identifier: "cand_a", Skills: []string{"Python"}}}

	_, err := RunMatching(context.Background(), backendJob(), candidates, Options{
		Weights: Weights{Skill: 0.9, Experience: 0.9},
	})

	require.Error(t, err)
	var preErr *PreconditionError
	assert.ErrorAs(t, err, &preErr)
}

func TestRunMatchingCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := []*types.CandidateProfile{
		{Identifier: "cand_a", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
	}

	outcome, err := RunMatching(ctx, backendJob(), candidates, Options{})

	require.Error(t, err)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Partial)
}

func TestRunMatchingRecoversFromPanickingScorer(t *testing.T) {
	original := scoreFn
	defer func() { scoreFn = original }()
	scoreFn = func(job *types.JobRequirement, candidate *types.CandidateProfile, w Weights) (*types.MatchResult, error) {
		if candidate.Identifier == "cand_bad" {
			panic("corrupt profile")
		}
		return original(job, candidate, w)
	}

	candidates := []*types.CandidateProfile{
		{Identifier: "cand_a", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
		{Identifier: "cand_bad", TotalExperienceYears: yearsPtr(4), Skills: []string{"SQL"}},
		{Identifier: "cand_c", TotalExperienceYears: yearsPtr(2), Skills: []string{"Python"}},
	}

	outcome, err := RunMatching(context.Background(), backendJob(), candidates, Options{Workers: 1})
	require.NoError(t, err)

	assert.Len(t, outcome.Ranked, 2)
	require.Len(t, outcome.Failed, 1)
	assert.Equal(t, "cand_bad", outcome.Failed[0].CandidateIdentifier)
	assert.Contains(t, outcome.Failed[0].Reason, "panicked")
	assert.False(t, outcome.Partial)
}

func TestRunMatchingDeterministicAcrossRuns(t *testing.T) {
	candidates := []*types.CandidateProfile{
		{Identifier: "cand_f", TotalExperienceYears: yearsPtr(2), Skills: []string{"SQL"}},
		{Identifier: "cand_c", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
		{Identifier: "cand_a", TotalExperienceYears: yearsPtr(5), Skills: []string{"Python", "SQL"}},
		{Identifier: "cand_e", TotalExperienceYears: yearsPtr(1), Skills: []string{"Python"}},
		{Identifier: "cand_b", TotalExperienceYears: yearsPtr(4), Skills: []string{"Python"}},
		{Identifier: "cand_d", Skills: []string{"SQL"}},
	}

	first, err := RunMatching(context.Background(), backendJob(), candidates, Options{Workers: 3})
	require.NoError(t, err)
	second, err := RunMatching(context.Background(), backendJob(), candidates, Options{Workers: 3})
	require.NoError(t, err)

	assert.Equal(t, first.Ranked, second.Ranked)
	for i, result := range first.Ranked {
		assert.Equal(t, i+1, result.Rank)
	}
}

func TestRunMatchingCustomWeights(t *testing.T) {
	candidates := []*types.CandidateProfile{
		{Identifier: "cand_b", TotalExperienceYears: yearsPtr(1), Skills: []string{"Python"}},
	}

	outcome, err := RunMatching(context.Background(), backendJob(), candidates, Options{
		Weights: Weights{Skill: 0.5, Experience: 0.5},
	})
	require.NoError(t, err)

	require.Len(t, outcome.Ranked, 1)
	assert.InDelta(t, 41.666, outcome.Ranked[0].OverallScore, 0.01)
}
