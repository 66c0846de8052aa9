package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// Error code constants for structured API error responses.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInvalidQuery  = "invalid_query"
	ErrCodeInvalidRange  = "invalid_range"
	ErrCodeUnknownPreset = "unknown_preset"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeTooLarge      = "payload_too_large"
	ErrCodeInternal      = "internal"
)

// APIError represents a structured error returned by the API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope wraps every JSON body except /healthz.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// writeError writes a failure envelope with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Envelope{Error: &APIError{Code: code, Message: message}})
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write json response", "err", err)
	}
}

// writeFailure maps domain errors to a status and code. Unrecognized
// errors are logged and reported as 500 without detail.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var (
		qe  *catalog.QueryError
		ve  *rangefilter.ValidationError
		upe *rangefilter.UnknownPresetError
		mbe *http.MaxBytesError
	)
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRange, err.Error())
	case errors.As(err, &qe):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidQuery, err.Error())
	case errors.As(err, &upe):
		writeError(w, http.StatusBadRequest, ErrCodeUnknownPreset, err.Error())
	case errors.As(err, &mbe):
		writeError(w, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
	case errors.Is(err, db.ErrInvalid):
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, db.ErrDuplicate), errors.Is(err, db.ErrCategoryInUse):
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		logFor(r.Context()).Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
