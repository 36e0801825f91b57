package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateSession creates a new matching session and returns it.
func (db *DB) CreateSession(ctx context.Context, jobTitle string, jobPayload []byte) (*Session, error) {
	var s Session
	err := db.pool.QueryRow(ctx,
		`INSERT INTO sessions (job_title, job_payload, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, job_title, status, revision, created_at, updated_at`,
		jobTitle, jobPayload, SessionStatusCreated,
	).Scan(&s.ID, &s.JobTitle, &s.Status, &s.Revision, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.JobPayload = jobPayload
	return &s, nil
}

// GetSession retrieves a session by ID. Returns (nil, nil) when not found.
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var s Session
	var weightageJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_title, job_payload, skills_weightage, status, revision, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		sessionID,
	).Scan(&s.ID, &s.JobTitle, &s.JobPayload, &weightageJSON, &s.Status, &s.Revision, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if weightageJSON != nil {
		_ = json.Unmarshal(weightageJSON, &s.SkillsWeightage)
	}

	return &s, nil
}

// SetSessionWeights replaces the session's skill weightage map, bumps its
// revision, and moves it to the weighted status. Results computed under the
// previous weights are cleared in the same transaction so the session never
// serves a ranking that no longer reflects its weights.
func (db *DB) SetSessionWeights(ctx context.Context, sessionID uuid.UUID, weightage map[string]int) (*Session, error) {
	weightageJSON, err := json.Marshal(weightage)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills weightage: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var s Session
	err = tx.QueryRow(ctx,
		`UPDATE sessions
		 SET skills_weightage = $1, status = $2, revision = revision + 1, updated_at = NOW()
		 WHERE id = $3
		 RETURNING id, job_title, job_payload, status, revision, created_at, updated_at`,
		weightageJSON, SessionStatusWeighted, sessionID,
	).Scan(&s.ID, &s.JobTitle, &s.JobPayload, &s.Status, &s.Revision, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set session weights: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM match_results WHERE session_id = $1`, sessionID); err != nil {
		return nil, fmt.Errorf("failed to invalidate stale results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.SkillsWeightage = weightage
	return &s, nil
}

// MarkSessionMatched moves a session to the matched status.
func (db *DB) MarkSessionMatched(ctx context.Context, sessionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE sessions SET status = $1, updated_at = NOW() WHERE id = $2`,
		SessionStatusMatched, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark session matched: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}

// DeleteSession removes a session and its candidates, results, and history
// (via cascade).
func (db *DB) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}
