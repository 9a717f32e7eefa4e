package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tapedeck/internal/shared"
)

// statusEnvelope is the body for mutation acknowledgements and errors.
type statusEnvelope struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// writeJSON serializes data with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeStatus acknowledges a mutation with {"status": "success"}.
func writeStatus(w http.ResponseWriter, status int) {
	writeJSON(w, status, statusEnvelope{Status: "success"})
}

func writeErrorStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusEnvelope{Status: "error", Error: message})
}

// writeError maps a domain error onto an HTTP status and error body.
//
// Known taxonomy errors carry their own safe message. Anything else is
// logged server-side and reported as a generic internal error.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidArgument),
		errors.Is(err, shared.ErrMissingArgument),
		errors.Is(err, shared.ErrInvalidOperation),
		errors.Is(err, shared.ErrConflict):
		writeErrorStatus(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, shared.ErrNotFound),
		errors.Is(err, shared.ErrResolution):
		writeErrorStatus(w, http.StatusNotFound, err.Error())

	case errors.Is(err, shared.ErrServiceUnavailable),
		errors.Is(err, shared.ErrTimeout):
		writeErrorStatus(w, http.StatusServiceUnavailable, err.Error())

	default:
		logger.Error("request failed", "error", err)
		writeErrorStatus(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", shared.ErrInvalidInput)
	}
	return nil
}
