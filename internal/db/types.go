package db

import (
	"time"

	"github.com/google/uuid"
)

// Session status values. A session moves from created to weighted once
// custom skill weights are applied, and to matched after a successful run.
const (
	SessionStatusCreated  = "created"
	SessionStatusWeighted = "weighted"
	SessionStatusMatched  = "matched"
)

// Session represents one matching session: a job description plus the
// candidates uploaded against it.
type Session struct {
	ID              uuid.UUID      `json:"id"`
	JobTitle        string         `json:"job_title"`
	JobPayload      []byte         `json:"job_payload,omitempty"`
	SkillsWeightage map[string]int `json:"skills_weightage,omitempty"`
	Status          string         `json:"status"`
	Revision        int            `json:"revision"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// LibraryEntry is a reusable job description saved to the library. Archived
// entries stay in the table but drop out of default listings.
type LibraryEntry struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	JobTitle        string         `json:"job_title"`
	JobPayload      []byte         `json:"job_payload,omitempty"`
	SkillsWeightage map[string]int `json:"skills_weightage,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Active          bool           `json:"active"`
	UsageCount      int            `json:"usage_count"`
	LastUsedAt      *time.Time     `json:"last_used_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// HistoryRecord is a snapshot of one completed matching run.
type HistoryRecord struct {
	ID                uuid.UUID `json:"id"`
	SessionID         uuid.UUID `json:"session_id"`
	JobTitle          string    `json:"job_title"`
	TotalCandidates   int       `json:"total_candidates"`
	MatchedCandidates int       `json:"matched_candidates"`
	FailedCandidates  int       `json:"failed_candidates"`
	TopCandidateName  *string   `json:"top_candidate_name,omitempty"`
	TopCandidateScore *float64  `json:"top_candidate_score,omitempty"`
	AverageScore      *float64  `json:"average_score,omitempty"`
	Summary           []byte    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
