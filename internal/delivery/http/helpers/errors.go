package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"devevents/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string // empty means use err.Error()
}

var errorMappings = []errorMapping{
	{domain.ErrMissingField, http.StatusBadRequest, ErrCodeBadRequest, ""},
	{domain.ErrInvalidDate, http.StatusBadRequest, ErrCodeBadRequest, ""},
	{domain.ErrInvalidTime, http.StatusBadRequest, ErrCodeBadRequest, ""},
	{domain.ErrInvalidEmail, http.StatusBadRequest, ErrCodeBadRequest, ""},
	{domain.ErrDuplicateSlug, http.StatusConflict, ErrCodeConflict, "an event with this title already exists"},
	{domain.ErrDuplicateBooking, http.StatusConflict, ErrCodeConflict, "this email has already booked the event"},
	{domain.ErrEventHasBookings, http.StatusConflict, ErrCodeConflict, "event has bookings and cannot be deleted"},
	{domain.ErrReferencedEventNotFound, http.StatusNotFound, ErrCodeNotFound, "event not found"},
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound, "not found"},
	{domain.ErrConnectionUnavailable, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "database unavailable, try again later"},
}

// WriteServiceError maps a service error onto the API envelope. Unexpected
// errors and store outages are logged.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		if m.status >= http.StatusInternalServerError {
			logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		WriteJSONError(w, m.status, m.code, msg)
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}
