// Package server provides the HTTP REST API for the candidate ranker.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/matching"
	"github.com/jonathan/candidate-ranker/internal/parsing"
	"github.com/jonathan/candidate-ranker/internal/schemas"
)

// ErrSessionNotFound indicates the session does not exist
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrResultNotFound indicates no result exists for a candidate in a session
type ErrResultNotFound struct {
	CandidateIdentifier string
}

func (e *ErrResultNotFound) Error() string {
	return fmt.Sprintf("result not found for candidate: %s", e.CandidateIdentifier)
}

// ErrHistoryNotFound indicates a session has no recorded history
type ErrHistoryNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrHistoryNotFound) Error() string {
	return fmt.Sprintf("no history recorded for session: %s", e.SessionID)
}

// ErrLibraryEntryNotFound indicates the library entry does not exist
type ErrLibraryEntryNotFound struct {
	EntryID uuid.UUID
}

func (e *ErrLibraryEntryNotFound) Error() string {
	return fmt.Sprintf("library entry not found: %s", e.EntryID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrSessionNotFound, *ErrResultNotFound, *ErrHistoryNotFound, *ErrLibraryEntryNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}

	var schemaErr *schemas.ValidationError
	var fieldErr *parsing.FieldError
	var ingestErr *parsing.IngestError
	var preErr *matching.PreconditionError
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &fieldErr), errors.As(err, &ingestErr):
		return http.StatusBadRequest
	case errors.As(err, &preErr):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}
