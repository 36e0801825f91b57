package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/parsing"
	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// parseSessionID extracts and parses the session ID path value. Writes an
// error response and returns false when the ID is malformed.
func (s *Server) parseSessionID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// weightageFromEntries folds recruiter-assigned weights into a map keyed by
// normalized skill name. Duplicate names keep the highest weight.
func weightageFromEntries(entries []types.SkillWeightEntry) (map[string]int, error) {
	weightage := make(map[string]int, len(entries))
	for _, entry := range entries {
		normalized := parsing.NormalizeSkillName(entry.Name)
		if normalized == "" {
			return nil, &ErrValidation{Field: "skills", Message: "skill name is empty after normalization"}
		}
		if existing, ok := weightage[normalized]; !ok || entry.Weight > existing {
			weightage[normalized] = entry.Weight
		}
	}
	return weightage, nil
}

// handleCreateSession creates a matching session from a job description
// payload.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := schemas.ValidateJobPayload(req.JobPayload); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job, err := parsing.IngestJob(req.JobPayload, s.cfg.DefaultSkillWeight)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	session, err := s.db.CreateSession(r.Context(), job.Title, req.JobPayload)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, session)
}

// handleGetSession retrieves a session by ID.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.parseSessionID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if session == nil {
		notFound := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

// handleDeleteSession removes a session and everything stored under it.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.parseSessionID(w, r, "id")
	if !ok {
		return
	}

	if err := s.db.DeleteSession(r.Context(), sessionID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSetWeights replaces the session's skill weightage map.
func (s *Server) handleSetWeights(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.parseSessionID(w, r, "id")
	if !ok {
		return
	}

	var req types.SetWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	weightage, err := weightageFromEntries(req.Skills)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	session, err := s.db.SetSessionWeights(r.Context(), sessionID, weightage)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if session == nil {
		notFound := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

// handleAddCandidates stores candidate profiles under the session.
func (s *Server) handleAddCandidates(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.parseSessionID(w, r, "id")
	if !ok {
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if session == nil {
		notFound := &ErrSessionNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	var req types.AddCandidatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Validate and normalize all payloads before storing any of them, so a
	// bad batch is rejected whole.
	profiles := make([]*types.CandidateProfile, 0, len(req.Candidates))
	for _, payload := range req.Candidates {
		if err := schemas.ValidateCandidatePayload(payload); err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		profile, err := parsing.IngestCandidate(payload)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		profiles = append(profiles, profile)
	}

	if err := s.db.AddCandidates(r.Context(), sessionID, profiles); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	count, err := s.db.CountCandidates(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"session_id":       sessionID,
		"added":            len(profiles),
		"total_candidates": count,
	})
}
