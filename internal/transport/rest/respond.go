package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v) //nolint:errcheck
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError translates a domain error into an HTTP status. Anything
// unrecognized is logged and surfaced as an opaque 500.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse(ve))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusUnprocessableEntity, "invalid household code")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationResponse(ve *domain.ValidationError) map[string]any {
	fields := make([]fieldErrorResponse, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fieldErrorResponse{Field: fe.Field, Message: fe.Message})
	}
	return map[string]any{
		"error":  "validation failed",
		"fields": fields,
	}
}
