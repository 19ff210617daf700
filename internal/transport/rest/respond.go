package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

type errorResponse struct {
	Error   string               `json:"error"`
	Details []fieldErrorResponse `json:"details,omitempty"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponder translates domain errors into HTTP answers.
type errorResponder struct {
	log *slog.Logger
	// notFound is the message for domain.ErrNotFound on this handler's routes.
	notFound string
}

func (e errorResponder) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrServiceUnavailable):
		e.log.ErrorContext(r.Context(), "backend unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "Service unavailable")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid authentication credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, e.notFoundMessage())
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, domain.ErrStorageWrite):
		e.log.ErrorContext(r.Context(), "storage write failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "Failed to store audio file")
	case errors.Is(err, domain.ErrMetadataWrite):
		e.log.ErrorContext(r.Context(), "metadata write failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to save recording")
	default:
		e.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (e errorResponder) notFoundMessage() string {
	if e.notFound == "" {
		return "Not found"
	}
	return e.notFound
}

func writeValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	details := make([]fieldErrorResponse, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		details = append(details, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   verr.Message(),
		Details: details,
	})
}

// decodeJSON reads a JSON request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
