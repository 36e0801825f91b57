package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// ReplaceResults clears any results stored for the session and writes the
// outcome of a fresh run. Re-running a session never mixes old and new
// rankings.
func (db *DB) ReplaceResults(ctx context.Context, sessionID uuid.UUID, results []types.MatchResult) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM match_results WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear existing results: %w", err)
	}

	for _, result := range results {
		matchedJSON, err := json.Marshal(result.MatchedSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal matched skills: %w", err)
		}
		missingJSON, err := json.Marshal(result.MissingSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal missing skills: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO match_results (session_id, candidate_identifier, candidate_name, rank_position,
			                            overall_score, skill_match_score, experience_score,
			                            matched_skills, missing_skills, experience_detected)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			sessionID, result.CandidateIdentifier, result.CandidateName, result.Rank,
			result.OverallScore, result.SkillMatchScore, result.ExperienceScore,
			matchedJSON, missingJSON, result.ExperienceDetected,
		)
		if err != nil {
			return fmt.Errorf("failed to store result for %s: %w", result.CandidateIdentifier, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListResults retrieves a session's match results ordered by rank.
func (db *DB) ListResults(ctx context.Context, sessionID uuid.UUID) ([]types.MatchResult, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT candidate_identifier, candidate_name, rank_position, overall_score,
		        skill_match_score, experience_score, matched_skills, missing_skills, experience_detected
		 FROM match_results WHERE session_id = $1
		 ORDER BY rank_position ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []types.MatchResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// GetResult retrieves one candidate's result within a session.
// Returns (nil, nil) when not found.
func (db *DB) GetResult(ctx context.Context, sessionID uuid.UUID, candidateIdentifier string) (*types.MatchResult, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT candidate_identifier, candidate_name, rank_position, overall_score,
		        skill_match_score, experience_score, matched_skills, missing_skills, experience_detected
		 FROM match_results WHERE session_id = $1 AND candidate_identifier = $2`,
		sessionID, candidateIdentifier,
	)

	result, err := scanResult(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func scanResult(row pgx.Row) (*types.MatchResult, error) {
	var result types.MatchResult
	var name *string
	var matchedJSON, missingJSON []byte

	err := row.Scan(&result.CandidateIdentifier, &name, &result.Rank, &result.OverallScore,
		&result.SkillMatchScore, &result.ExperienceScore, &matchedJSON, &missingJSON, &result.ExperienceDetected)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan result: %w", err)
	}

	if name != nil {
		result.CandidateName = *name
	}
	if matchedJSON != nil {
		_ = json.Unmarshal(matchedJSON, &result.MatchedSkills)
	}
	if missingJSON != nil {
		_ = json.Unmarshal(missingJSON, &result.MissingSkills)
	}

	return &result, nil
}
