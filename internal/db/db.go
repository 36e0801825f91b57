// Package db provides PostgreSQL persistence for matching sessions,
// candidates, results, and history snapshots.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// InitSchema creates the tables the application needs if they do not exist.
func (db *DB) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			job_title TEXT NOT NULL,
			job_payload JSONB NOT NULL,
			skills_weightage JSONB,
			status TEXT NOT NULL DEFAULT 'created',
			revision INT NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS candidates (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			identifier TEXT NOT NULL,
			name TEXT,
			email TEXT,
			phone TEXT,
			links JSONB,
			total_experience_years DOUBLE PRECISION,
			skills JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (session_id, identifier)
		)`,
		`CREATE TABLE IF NOT EXISTS match_results (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			candidate_identifier TEXT NOT NULL,
			candidate_name TEXT,
			rank_position INT NOT NULL,
			overall_score DOUBLE PRECISION NOT NULL,
			skill_match_score DOUBLE PRECISION NOT NULL,
			experience_score DOUBLE PRECISION NOT NULL,
			matched_skills JSONB,
			missing_skills JSONB,
			experience_detected BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (session_id, candidate_identifier)
		)`,
		`CREATE TABLE IF NOT EXISTS matching_history (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session_id UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			job_title TEXT NOT NULL,
			total_candidates INT NOT NULL,
			matched_candidates INT NOT NULL,
			failed_candidates INT NOT NULL,
			top_candidate_name TEXT,
			top_candidate_score DOUBLE PRECISION,
			average_score DOUBLE PRECISION,
			summary JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jd_library (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			job_title TEXT NOT NULL,
			job_payload JSONB NOT NULL,
			skills_weightage JSONB,
			tags JSONB,
			notes TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			usage_count INT NOT NULL DEFAULT 0,
			last_used_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_session ON candidates(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_match_results_session ON match_results(session_id, rank_position)`,
		`CREATE INDEX IF NOT EXISTS idx_matching_history_created ON matching_history(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jd_library_active ON jd_library(is_active, last_used_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
