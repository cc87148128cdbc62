package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"planpact/internal/domain"
)

// WriteServiceError renders err with the status of its domain error class. notFound is the message
// used for 404s, including ErrNoAccess, so a caller cannot tell a hidden pact from a missing one.
// Anything outside the taxonomy is logged and rendered as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, verr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNoAccess), errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, notFound)
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "email already registered")
	case errors.Is(err, domain.ErrPactFull):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "pact is full")
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
