package handler

import (
	"net/http"
	"strings"

	"github.com/platefront/backoffice-backend/internal/auth/service"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/httputil"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// Middleware gates routes on a resolved session. The session credential is
// read exactly once here and the resulting caller context rides the request
// context; handlers never touch cookies or headers themselves.
type Middleware struct {
	auth   *service.AuthService
	logger *logger.Logger
}

// NewMiddleware creates new auth middleware
func NewMiddleware(auth *service.AuthService, log *logger.Logger) *Middleware {
	return &Middleware{auth: auth, logger: log}
}

// RequireSession requires a valid session, any role.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return m.require("")(next)
}

// RequireRole requires a valid session with the given role.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return m.require(role)
}

// RequireStore requires a store-scoped caller; headquarters users are
// rejected with 403.
func (m *Middleware) RequireStore(next http.Handler) http.Handler {
	return m.require(actor.RoleStore)(next)
}

func (m *Middleware) require(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := m.auth.Authorize(r.Context(), TokenFromRequest(r), role)
			if err != nil {
				httputil.Error(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(actor.WithCaller(r.Context(), caller)))
		})
	}
}

// TokenFromRequest extracts the session credential from the Authorization
// header, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}

	return ""
}
