package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/security"

	"github.com/google/uuid"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "request_id"
)

// PrincipalFromContext returns the authenticated actor set by AuthMiddleware.
func PrincipalFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(principalKey).(domain.Actor)
	return actor, ok
}

// RequestIDFromContext returns the request id set by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestIDMiddleware ensures every request carries an id for tracing.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware emits one structured log line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.WithRequest(RequestIDFromContext(r.Context())).Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
	})
}

// AuthMiddleware validates the bearer token and stores the principal in the
// request context. Tokens come from the external identity provider; the role
// claim decides which operations the actor may reach.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, r, errUnauthorized)
				return
			}
			claims, err := tm.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, r, errUnauthorized)
				return
			}
			actor := domain.Actor{Role: claims.Role, ID: claims.ActorID}
			ctx := context.WithValue(r.Context(), principalKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects principals whose role does not match.
func RequireRole(role domain.ActorRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := PrincipalFromContext(r.Context())
			if !ok || actor.Role != role {
				writeError(w, r, domain.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
