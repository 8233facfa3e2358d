package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "devevents/internal/delivery/http/helpers"
	"devevents/internal/domain"
)

type contextKey string

const organizerKey contextKey = "organizer"

// SetOrganizer returns a context carrying the authenticated organizer subject.
func SetOrganizer(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, organizerKey, subject)
}

// OrganizerFromContext returns the authenticated organizer subject, if present.
func OrganizerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(organizerKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the organizer in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
// A nil verifier disables the check.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if verifier == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetOrganizer(r.Context(), subject)))
		}
	}
}
