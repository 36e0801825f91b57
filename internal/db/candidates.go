package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// AddCandidates stores candidate profiles under a session in a single
// transaction. Re-uploading a profile with the same identifier replaces the
// earlier record.
func (db *DB) AddCandidates(ctx context.Context, sessionID uuid.UUID, profiles []*types.CandidateProfile) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, profile := range profiles {
		var linksJSON, skillsJSON []byte
		if len(profile.Links) > 0 {
			linksJSON, err = json.Marshal(profile.Links)
			if err != nil {
				return fmt.Errorf("failed to marshal links: %w", err)
			}
		}
		if len(profile.Skills) > 0 {
			skillsJSON, err = json.Marshal(profile.Skills)
			if err != nil {
				return fmt.Errorf("failed to marshal skills: %w", err)
			}
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO candidates (session_id, identifier, name, email, phone, links, total_experience_years, skills)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (session_id, identifier) DO UPDATE SET
			     name = $3,
			     email = $4,
			     phone = $5,
			     links = $6,
			     total_experience_years = $7,
			     skills = $8`,
			sessionID, profile.Identifier, profile.Name, profile.Email, profile.Phone,
			linksJSON, profile.TotalExperienceYears, skillsJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to store candidate %s: %w", profile.Identifier, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListCandidates retrieves all candidate profiles stored under a session.
func (db *DB) ListCandidates(ctx context.Context, sessionID uuid.UUID) ([]*types.CandidateProfile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT identifier, name, email, phone, links, total_experience_years, skills
		 FROM candidates WHERE session_id = $1
		 ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var profiles []*types.CandidateProfile
	for rows.Next() {
		var p types.CandidateProfile
		var name, email, phone *string
		var linksJSON, skillsJSON []byte

		if err := rows.Scan(&p.Identifier, &name, &email, &phone, &linksJSON, &p.TotalExperienceYears, &skillsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if name != nil {
			p.Name = *name
		}
		if email != nil {
			p.Email = *email
		}
		if phone != nil {
			p.Phone = *phone
		}
		if linksJSON != nil {
			_ = json.Unmarshal(linksJSON, &p.Links)
		}
		if skillsJSON != nil {
			_ = json.Unmarshal(skillsJSON, &p.Skills)
		}

		profiles = append(profiles, &p)
	}
	return profiles, nil
}

// CountCandidates returns the number of candidates stored under a session.
func (db *DB) CountCandidates(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM candidates WHERE session_id = $1`,
		sessionID,
	).Scan(&count)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}
