package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/andradelabs/motopecas-backend/api/responses"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

type contextKey string

const sessionIDKey contextKey = "session_id"

// RequireSession enforces the anonymous storefront session header. The
// browser generates the UUID once and sends it on every call; the cart and
// order history are keyed by it.
func RequireSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(sessionIDHeader)
			if raw == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "X-Session-Id header is required"))
				return
			}

			sessionID, err := uuid.Parse(raw)
			if err != nil || sessionID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "X-Session-Id must be a valid uuid"))
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the session id set by RequireSession, or
// uuid.Nil when the middleware did not run.
func SessionIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(sessionIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
