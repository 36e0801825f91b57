package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-ranker/internal/types"
)

const defaultWorkers = 4

// scoreFn is swapped in tests to exercise worker failure paths.
var scoreFn = ScoreCandidate

// Options configures a matching run.
type Options struct {
	// Workers bounds the number of candidates scored concurrently.
	// Zero or negative means the default.
	Workers int
	// Weights overrides the score split. The zero value means the default
	// 70/30 split.
	Weights Weights
}

// ScoreCandidate scores a single candidate against a job requirement.
func ScoreCandidate(job *types.JobRequirement, candidate *types.CandidateProfile, w Weights) (*types.MatchResult, error) {
	if candidate == nil {
		return nil, &CandidateError{Message: "candidate profile is nil"}
	}
	if strings.TrimSpace(candidate.Identifier) == "" {
		return nil, &CandidateError{Message: "candidate has no identifier"}
	}

	skillScore, matched, missing := MatchSkills(job.Skills, candidate.Skills)
	experienceScore, detected := ScoreExperience(job.RequiredExperience, candidate.TotalExperienceYears)

	return &types.MatchResult{
		CandidateIdentifier: candidate.Identifier,
		CandidateName:       candidate.Name,
		OverallScore:        Aggregate(skillScore, experienceScore, w),
		SkillMatchScore:     skillScore,
		ExperienceScore:     experienceScore,
		MatchedSkills:       matched,
		MissingSkills:       missing,
		ExperienceDetected:  detected,
	}, nil
}

// RunMatching scores every candidate against the job and returns them ranked
// best first. Candidates that cannot be scored are reported in the outcome's
// Failed list without aborting the batch. If the context is cancelled
// mid-run, the outcome covers the candidates scored so far, is marked
// Partial, and the context's error is returned alongside it.
//
// The run is rejected up front when there are no candidates, or when the job
// carries neither weighted skills nor an experience requirement.
func RunMatching(ctx context.Context, job *types.JobRequirement, candidates []*types.CandidateProfile, opts Options) (*types.RankingOutcome, error) {
	if job == nil {
		return nil, &PreconditionError{Message: "job requirement is nil"}
	}
	if len(candidates) == 0 {
		return nil, &PreconditionError{Message: "no candidates to match"}
	}
	if len(job.Skills) == 0 && job.RequiredExperience == nil {
		return nil, &PreconditionError{Message: "job has no skills or experience requirement to score against"}
	}

	weights := opts.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if !weights.Valid() {
		return nil, &PreconditionError{Message: "score weights must be non-negative and sum to 1"}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	results := make([]*types.MatchResult, len(candidates))
	failures := make([]*types.FailedCandidate, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, candidate := range candidates {
		i, candidate := i, candidate
		group.Go(func() error {
			// A panicking scorer costs one candidate, not the batch.
			defer func() {
				if r := recover(); r != nil {
					identifier := ""
					if candidate != nil {
						identifier = candidate.Identifier
					}
					failures[i] = &types.FailedCandidate{
						CandidateIdentifier: identifier,
						Reason:              fmt.Sprintf("scoring panicked: %v", r),
					}
				}
			}()

			if err := groupCtx.Err(); err != nil {
				return err
			}

			result, err := scoreFn(job, candidate, weights)
			if err != nil {
				identifier := ""
				if candidate != nil {
					identifier = candidate.Identifier
				}
				failures[i] = &types.FailedCandidate{
					CandidateIdentifier: identifier,
					Reason:              err.Error(),
				}
				return nil
			}
			results[i] = result
			return nil
		})
	}

	runErr := group.Wait()

	outcome := &types.RankingOutcome{TotalAttempted: len(candidates)}
	for _, result := range results {
		if result != nil {
			outcome.Ranked = append(outcome.Ranked, *result)
		}
	}
	for _, failure := range failures {
		if failure != nil {
			outcome.Failed = append(outcome.Failed, *failure)
		}
	}
	outcome.SuccessfullyMatched = len(outcome.Ranked)
	outcome.Partial = runErr != nil

	rankResults(outcome.Ranked)

	if runErr != nil {
		return outcome, runErr
	}
	return outcome, nil
}

// rankResults sorts results best first and assigns 1-based ranks. Ties on the
// overall score break on the skill score, then on the candidate identifier so
// the ordering is deterministic.
func rankResults(results []types.MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].OverallScore != results[j].OverallScore {
			return results[i].OverallScore > results[j].OverallScore
		}
		if results[i].SkillMatchScore != results[j].SkillMatchScore {
			return results[i].SkillMatchScore > results[j].SkillMatchScore
		}
		return results[i].CandidateIdentifier < results[j].CandidateIdentifier
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}
