package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// CreateSessionRequest represents the request to open a matching session
// around a structured job description payload. JobPayload carries the raw
// output of the external structuring collaborator and is normalized by the
// boundary adapter before storage.
type CreateSessionRequest struct {
	JobPayload json.RawMessage `json:"job" validate:"required"`
}

// SkillWeightEntry represents one recruiter-assigned skill weight.
type SkillWeightEntry struct {
	Name   string `json:"name" validate:"required,min=1"`
	Weight int    `json:"weight" validate:"required,min=1,max=100"`
}

// SetWeightsRequest represents the request to finalize skill weights for a session.
type SetWeightsRequest struct {
	Skills []SkillWeightEntry `json:"skills" validate:"required,min=1,dive"`
}

// AddCandidatesRequest represents a batch of structured resume payloads from
// the external structuring collaborator.
type AddCandidatesRequest struct {
	Candidates []json.RawMessage `json:"candidates" validate:"required,min=1"`
}

// SaveLibraryEntryRequest represents the request to save a reusable job
// description to the library. JobPayload carries the same structured payload
// a session is created from.
type SaveLibraryEntryRequest struct {
	Name       string             `json:"name" validate:"required,min=1,max=200"`
	JobPayload json.RawMessage    `json:"job" validate:"required"`
	Skills     []SkillWeightEntry `json:"skills,omitempty" validate:"omitempty,dive"`
	Tags       []string           `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Notes      string             `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// MatchRequest represents the request to run matching for a session.
type MatchRequest struct {
	Workers int `json:"workers,omitempty" validate:"omitempty,min=1,max=64"`
}

// Validate validates the CreateSessionRequest using the validator.
func (r *CreateSessionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetWeightsRequest using the validator.
func (r *SetWeightsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddCandidatesRequest using the validator.
func (r *AddCandidatesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SaveLibraryEntryRequest using the validator.
func (r *SaveLibraryEntryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
