package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LibraryEntryInput carries the fields stored for a library entry.
type LibraryEntryInput struct {
	Name            string
	JobTitle        string
	JobPayload      []byte
	SkillsWeightage map[string]int
	Tags            []string
	Notes           string
}

// LibraryFilter narrows library listings. The zero value lists active
// entries, most recently used first.
type LibraryFilter struct {
	Search          string
	Tag             string
	IncludeArchived bool
}

// SaveLibraryEntry stores a reusable job description and returns it.
func (db *DB) SaveLibraryEntry(ctx context.Context, input *LibraryEntryInput) (*LibraryEntry, error) {
	weightageJSON, tagsJSON, err := marshalLibraryFields(input.SkillsWeightage, input.Tags)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO jd_library (name, job_title, job_payload, skills_weightage, tags, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, name, job_title, job_payload, skills_weightage, tags, notes,
		           is_active, usage_count, last_used_at, created_at, updated_at`,
		input.Name, input.JobTitle, input.JobPayload, weightageJSON, tagsJSON, input.Notes,
	)

	entry, err := scanLibraryEntry(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save library entry: %w", err)
	}
	return entry, nil
}

// ListLibraryEntries retrieves library entries matching the filter, most
// recently used first.
func (db *DB) ListLibraryEntries(ctx context.Context, filter LibraryFilter) ([]LibraryEntry, error) {
	query := `SELECT id, name, job_title, job_payload, skills_weightage, tags, notes,
	                 is_active, usage_count, last_used_at, created_at, updated_at
	          FROM jd_library WHERE 1=1`
	var args []any

	if !filter.IncludeArchived {
		query += ` AND is_active = TRUE`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR job_title ILIKE $%d)`, len(args), len(args))
	}
	if filter.Tag != "" {
		tagJSON, err := json.Marshal([]string{filter.Tag})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tag filter: %w", err)
		}
		args = append(args, tagJSON)
		query += fmt.Sprintf(` AND tags @> $%d`, len(args))
	}
	query += ` ORDER BY last_used_at DESC NULLS LAST, created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list library entries: %w", err)
	}
	defer rows.Close()

	var entries []LibraryEntry
	for rows.Next() {
		entry, err := scanLibraryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan library entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// GetLibraryEntry retrieves a library entry by ID. Returns (nil, nil) when
// not found.
func (db *DB) GetLibraryEntry(ctx context.Context, entryID uuid.UUID) (*LibraryEntry, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, job_title, job_payload, skills_weightage, tags, notes,
		        is_active, usage_count, last_used_at, created_at, updated_at
		 FROM jd_library WHERE id = $1`,
		entryID,
	)

	entry, err := scanLibraryEntry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get library entry: %w", err)
	}
	return entry, nil
}

// UpdateLibraryEntry replaces a library entry's mutable fields. Returns
// (nil, nil) when the entry does not exist.
func (db *DB) UpdateLibraryEntry(ctx context.Context, entryID uuid.UUID, input *LibraryEntryInput) (*LibraryEntry, error) {
	weightageJSON, tagsJSON, err := marshalLibraryFields(input.SkillsWeightage, input.Tags)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE jd_library
		 SET name = $1, job_title = $2, job_payload = $3, skills_weightage = $4,
		     tags = $5, notes = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING id, name, job_title, job_payload, skills_weightage, tags, notes,
		           is_active, usage_count, last_used_at, created_at, updated_at`,
		input.Name, input.JobTitle, input.JobPayload, weightageJSON, tagsJSON, input.Notes, entryID,
	)

	entry, err := scanLibraryEntry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update library entry: %w", err)
	}
	return entry, nil
}

// ArchiveLibraryEntry soft-deletes a library entry so it drops out of
// default listings but stays recoverable.
func (db *DB) ArchiveLibraryEntry(ctx context.Context, entryID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jd_library SET is_active = FALSE, updated_at = NOW() WHERE id = $1`,
		entryID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive library entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("library entry not found: %s", entryID)
	}
	return nil
}

// RecordLibraryUse bumps a library entry's usage stats.
func (db *DB) RecordLibraryUse(ctx context.Context, entryID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jd_library SET usage_count = usage_count + 1, last_used_at = NOW() WHERE id = $1`,
		entryID,
	)
	if err != nil {
		return fmt.Errorf("failed to record library use: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("library entry not found: %s", entryID)
	}
	return nil
}

func marshalLibraryFields(weightage map[string]int, tags []string) ([]byte, []byte, error) {
	var weightageJSON, tagsJSON []byte
	var err error
	if len(weightage) > 0 {
		weightageJSON, err = json.Marshal(weightage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal skills weightage: %w", err)
		}
	}
	if len(tags) > 0 {
		tagsJSON, err = json.Marshal(tags)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal tags: %w", err)
		}
	}
	return weightageJSON, tagsJSON, nil
}

func scanLibraryEntry(row pgx.Row) (*LibraryEntry, error) {
	var entry LibraryEntry
	var weightageJSON, tagsJSON []byte
	var notes *string

	err := row.Scan(&entry.ID, &entry.Name, &entry.JobTitle, &entry.JobPayload, &weightageJSON,
		&tagsJSON, &notes, &entry.Active, &entry.UsageCount, &entry.LastUsedAt,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if weightageJSON != nil {
		_ = json.Unmarshal(weightageJSON, &entry.SkillsWeightage)
	}
	if tagsJSON != nil {
		_ = json.Unmarshal(tagsJSON, &entry.Tags)
	}
	if notes != nil {
		entry.Notes = *notes
	}

	return &entry, nil
}
