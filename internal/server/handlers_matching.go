package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/candidate-ranker/internal/db"
	"github.com/jonathan/candidate-ranker/internal/export"
	"github.com/jonathan/candidate-ranker/internal/matching"
	"github.com/jonathan/candidate-ranker/internal/parsing"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// applySessionWeights overrides the job's skill weights with the session's
// weightage map. Map keys are stored in normalized form.
func applySessionWeights(job *types.JobRequirement, weightage map[string]int) {
	if len(weightage) == 0 {
		return
	}
	for i := range job.Skills {
		if weight, ok := weightage[parsing.NormalizeSkillName(job.Skills[i].Name)]; ok {
			job.Skills[i].Weight = weight
		}
	}
}

// jobForSession rebuilds the strict job requirement from the session's
// stored payload and applies any custom weights set since.
func (s *Server) jobForSession(session *db.Session) (*types.JobRequirement, error) {
	job, err := parsing.IngestJob(session.JobPayload, s.cfg.DefaultSkillWeight)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild job for session %s: %w", session.ID, err)
	}
	applySessionWeights(job, session.SkillsWeightage)
	return job, nil
}

// handleRunMatch scores every stored candidate against the session's job and
// replaces the session's results with the fresh ranking.
func (s *Server) handleRunMatch(w http.ResponseWriter, r *http.Request) {
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

	var req types.MatchRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	job, err := s.jobForSession(session)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	candidates, err := s.db.ListCandidates(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	workers := req.Workers
	if workers <= 0 {
		workers = s.cfg.Workers
	}

	outcome, err := matching.RunMatching(r.Context(), job, candidates, matching.Options{
		Workers: workers,
		Weights: matching.Weights{Skill: s.cfg.SkillWeight, Experience: s.cfg.ExperienceWeight},
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.db.ReplaceResults(r.Context(), sessionID, outcome.Ranked); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.db.MarkSessionMatched(r.Context(), sessionID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, outcome)
}

// handleListResults returns a session's stored results ordered by rank.
func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
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

	results, err := s.db.ListResults(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"job_title":  session.JobTitle,
		"results":    results,
	})
}

// handleGetResult returns one candidate's stored result within a session.
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.parseSessionID(w, r, "id")
	if !ok {
		return
	}
	candidateID := r.PathValue("candidate_id")

	result, err := s.db.GetResult(r.Context(), sessionID, candidateID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result == nil {
		notFound := &ErrResultNotFound{CandidateIdentifier: candidateID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleExportCSV streams a session's stored results as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
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

	results, err := s.db.ListResults(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	outcome := &types.RankingOutcome{
		Ranked:              results,
		TotalAttempted:      len(results),
		SuccessfullyMatched: len(results),
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="results_%s.csv"`, sessionID))
	if err := export.WriteCSV(w, outcome); err != nil {
		// Headers are already sent; nothing left to do but log.
		log.Printf("CSV export error: %v", err)
	}
}
