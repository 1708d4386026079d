package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	repo "github.com/rogerio-castellano/yard-tracker/internal/repo"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		logger.Warn("failed to write JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	respond(w, status, ErrorResponse{Message: message})
}

const validationTitle = "One or more validation errors occurred."

func writeValidation(w http.ResponseWriter, errs map[string][]string) {
	respond(w, http.StatusBadRequest, ValidationErrorResponse{Title: validationTitle, Errors: errs})
}

// writeRepoError maps repository sentinels to statuses. Unexpected errors
// are logged and reported without their text.
func writeRepoError(w http.ResponseWriter, err error, entity, action string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, repo.ErrDuplicatedValueUnique):
		writeError(w, http.StatusConflict, fmt.Sprintf("could not %s %s: duplicated unique value", action, entity))
	default:
		logger.Error("repository failure", zap.String("entity", entity), zap.String("action", action), zap.Error(err))
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("could not %s %s", action, entity))
	}
}

func pathID(w http.ResponseWriter, r *http.Request, entity string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+entity+" ID")
		return 0, false
	}
	return id, true
}

func parseIntPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
