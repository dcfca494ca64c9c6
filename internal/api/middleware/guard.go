package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/metrics"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// RequireRole admits principals whose current role is one of roles. It must
// run after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				api.HandleAPIError(w, r, auth.ErrMissingToken, "")
				return
			}

			if err := auth.CheckRole(principal.Role, roles...); err != nil {
				deny(w, r, "role", principal, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrRole admits the principal named by the UUID path parameter
// param, or a principal holding one of roles.
func RequireSelfOrRole(param string, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				api.HandleAPIError(w, r, auth.ErrMissingToken, "")
				return
			}

			targetID, err := api.GetPathUUID(r, param)
			if err != nil {
				api.HandleAPIError(w, r, err, "")
				return
			}

			if err := auth.CheckSelfOrRole(principal, targetID, roles...); err != nil {
				deny(w, r, "self_or_role", principal, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, gate string, principal *domain.User, err error) {
	metrics.RecordForbidden(gate)
	logger.FromContext(r.Context()).Info("request denied",
		slog.String("gate", gate),
		slog.String("user_id", principal.ID.String()),
		slog.String("role", principal.Role.String()),
		slog.String("path", r.URL.Path))
	api.HandleAPIError(w, r, err, "")
}
