package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/candidate-ranker/internal/db"
)

// handleSaveHistory snapshots the session's current results into the
// matching history.
func (s *Server) handleSaveHistory(w http.ResponseWriter, r *http.Request) {
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
	if len(results) == 0 {
		validationErr := &ErrValidation{Field: "session", Message: "session has no results to snapshot"}
		s.errorResponse(w, HTTPStatus(validationErr), validationErr.Error())
		return
	}

	totalCandidates, err := s.db.CountCandidates(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	input := &db.HistorySnapshotInput{
		SessionID:         sessionID,
		JobTitle:          session.JobTitle,
		TotalCandidates:   totalCandidates,
		MatchedCandidates: len(results),
		FailedCandidates:  totalCandidates - len(results),
		Summary:           results,
	}

	top := results[0]
	topName := top.CandidateName
	if topName == "" {
		topName = top.CandidateIdentifier
	}
	input.TopCandidateName = &topName
	input.TopCandidateScore = &top.OverallScore

	var sum float64
	for _, result := range results {
		sum += result.OverallScore
	}
	average := sum / float64(len(results))
	input.AverageScore = &average

	record, err := s.db.SaveHistorySnapshot(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, record)
}

// handleListHistory returns recent history snapshots across all sessions.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	records, err := s.db.ListHistory(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count":   len(records),
		"history": records,
	})
}

// handleGetHistory returns the most recent snapshot for a session.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := s.parseSessionID(w, r, "session_id")
	if !ok {
		return
	}

	record, err := s.db.GetHistoryBySession(r.Context(), sessionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		notFound := &ErrHistoryNotFound{SessionID: sessionID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}
