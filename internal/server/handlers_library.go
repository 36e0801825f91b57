package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/db"
	"github.com/jonathan/candidate-ranker/internal/parsing"
	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// parseLibraryEntryID extracts and parses the library entry ID path value.
func (s *Server) parseLibraryEntryID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid library entry ID")
		return uuid.Nil, false
	}
	return id, true
}

// libraryInputFromRequest validates the payload and builds the stored entry.
func (s *Server) libraryInputFromRequest(req *types.SaveLibraryEntryRequest) (*db.LibraryEntryInput, error) {
	if err := schemas.ValidateJobPayload(req.JobPayload); err != nil {
		return nil, err
	}
	job, err := parsing.IngestJob(req.JobPayload, s.cfg.DefaultSkillWeight)
	if err != nil {
		return nil, err
	}
	weightage, err := weightageFromEntries(req.Skills)
	if err != nil {
		return nil, err
	}
	return &db.LibraryEntryInput{
		Name:            req.Name,
		JobTitle:        job.Title,
		JobPayload:      req.JobPayload,
		SkillsWeightage: weightage,
		Tags:            req.Tags,
		Notes:           req.Notes,
	}, nil
}

// handleSaveLibraryEntry saves a reusable job description to the library.
func (s *Server) handleSaveLibraryEntry(w http.ResponseWriter, r *http.Request) {
	var req types.SaveLibraryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	input, err := s.libraryInputFromRequest(&req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	entry, err := s.db.SaveLibraryEntry(r.Context(), input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, entry)
}

// handleListLibrary lists library entries, filtered by the optional search,
// tag, and include_archived query parameters.
func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	filter := db.LibraryFilter{
		Search:          r.URL.Query().Get("search"),
		Tag:             r.URL.Query().Get("tag"),
		IncludeArchived: r.URL.Query().Get("include_archived") == "true",
	}

	entries, err := s.db.ListLibraryEntries(r.Context(), filter)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"total":   len(entries),
		"entries": entries,
	})
}

// handleGetLibraryEntry retrieves a library entry by ID.
func (s *Server) handleGetLibraryEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := s.parseLibraryEntryID(w, r)
	if !ok {
		return
	}

	entry, err := s.db.GetLibraryEntry(r.Context(), entryID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		notFound := &ErrLibraryEntryNotFound{EntryID: entryID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, entry)
}

// handleUpdateLibraryEntry replaces a library entry's stored fields.
func (s *Server) handleUpdateLibraryEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := s.parseLibraryEntryID(w, r)
	if !ok {
		return
	}

	var req types.SaveLibraryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	input, err := s.libraryInputFromRequest(&req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	entry, err := s.db.UpdateLibraryEntry(r.Context(), entryID, input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		notFound := &ErrLibraryEntryNotFound{EntryID: entryID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, entry)
}

// handleArchiveLibraryEntry archives a library entry. The entry survives in
// storage and can be listed with include_archived.
func (s *Server) handleArchiveLibraryEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := s.parseLibraryEntryID(w, r)
	if !ok {
		return
	}

	if err := s.db.ArchiveLibraryEntry(r.Context(), entryID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "archived"})
}

// handleUseLibraryEntry opens a new matching session from a library entry,
// carrying over its stored skill weights, and bumps the entry's usage stats.
func (s *Server) handleUseLibraryEntry(w http.ResponseWriter, r *http.Request) {
	entryID, ok := s.parseLibraryEntryID(w, r)
	if !ok {
		return
	}

	entry, err := s.db.GetLibraryEntry(r.Context(), entryID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entry == nil {
		notFound := &ErrLibraryEntryNotFound{EntryID: entryID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	if !entry.Active {
		validationErr := &ErrValidation{Field: "id", Message: "library entry is archived"}
		s.errorResponse(w, HTTPStatus(validationErr), validationErr.Error())
		return
	}

	session, err := s.db.CreateSession(r.Context(), entry.JobTitle, entry.JobPayload)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(entry.SkillsWeightage) > 0 {
		session, err = s.db.SetSessionWeights(r.Context(), session.ID, entry.SkillsWeightage)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := s.db.RecordLibraryUse(r.Context(), entryID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"library_entry_id": entryID,
		"session":          session,
	})
}
