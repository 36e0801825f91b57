package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// History listing is capped so the endpoint stays cheap as runs accumulate.
const maxHistoryRecords = 50

// HistorySnapshotInput carries the fields recorded for one completed run.
type HistorySnapshotInput struct {
	SessionID         uuid.UUID
	JobTitle          string
	TotalCandidates   int
	MatchedCandidates int
	FailedCandidates  int
	TopCandidateName  *string
	TopCandidateScore *float64
	AverageScore      *float64
	Summary           any
}

// SaveHistorySnapshot records a snapshot of a completed matching run.
func (db *DB) SaveHistorySnapshot(ctx context.Context, input *HistorySnapshotInput) (*HistoryRecord, error) {
	var summaryJSON []byte
	var err error
	if input.Summary != nil {
		summaryJSON, err = json.Marshal(input.Summary)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history summary: %w", err)
		}
	}

	var record HistoryRecord
	err = db.pool.QueryRow(ctx,
		`INSERT INTO matching_history (session_id, job_title, total_candidates, matched_candidates,
		                               failed_candidates, top_candidate_name, top_candidate_score,
		                               average_score, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, session_id, job_title, total_candidates, matched_candidates, failed_candidates,
		           top_candidate_name, top_candidate_score, average_score, created_at`,
		input.SessionID, input.JobTitle, input.TotalCandidates, input.MatchedCandidates,
		input.FailedCandidates, input.TopCandidateName, input.TopCandidateScore,
		input.AverageScore, summaryJSON,
	).Scan(&record.ID, &record.SessionID, &record.JobTitle, &record.TotalCandidates,
		&record.MatchedCandidates, &record.FailedCandidates, &record.TopCandidateName,
		&record.TopCandidateScore, &record.AverageScore, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save history snapshot: %w", err)
	}
	record.Summary = summaryJSON
	return &record, nil
}

// ListHistory retrieves recent history snapshots across all sessions,
// newest first.
func (db *DB) ListHistory(ctx context.Context, limit int) ([]HistoryRecord, error) {
	if limit <= 0 || limit > maxHistoryRecords {
		limit = maxHistoryRecords
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, job_title, total_candidates, matched_candidates, failed_candidates,
		        top_candidate_name, top_candidate_score, average_score, created_at
		 FROM matching_history
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var record HistoryRecord
		if err := rows.Scan(&record.ID, &record.SessionID, &record.JobTitle, &record.TotalCandidates,
			&record.MatchedCandidates, &record.FailedCandidates, &record.TopCandidateName,
			&record.TopCandidateScore, &record.AverageScore, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// GetHistoryBySession retrieves the most recent snapshot for a session,
// including the full summary. Returns (nil, nil) when the session has no
// history.
func (db *DB) GetHistoryBySession(ctx context.Context, sessionID uuid.UUID) (*HistoryRecord, error) {
	var record HistoryRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, job_title, total_candidates, matched_candidates, failed_candidates,
		        top_candidate_name, top_candidate_score, average_score, summary, created_at
		 FROM matching_history
		 WHERE session_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		sessionID,
	).Scan(&record.ID, &record.SessionID, &record.JobTitle, &record.TotalCandidates,
		&record.MatchedCandidates, &record.FailedCandidates, &record.TopCandidateName,
		&record.TopCandidateScore, &record.AverageScore, &record.Summary, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get history for session: %w", err)
	}
	return &record, nil
}
