package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/metrics"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// TokenResolver decodes bearer tokens and loads the principal they name.
// *auth.Service satisfies it.
type TokenResolver interface {
	DecodeToken(ctx context.Context, token string) (*auth.Claims, error)
	ResolvePrincipal(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	resolver TokenResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate extracts the bearer token, decodes it, loads the current
// account for its subject and attaches that account to the request context.
// Authorization decisions downstream use the stored role, not the role
// recorded in the token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := ExtractBearerToken(r)
		if token == "" {
			reject(w, r, "missing", auth.ErrMissingToken)
			return
		}

		claims, err := m.resolver.DecodeToken(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				reject(w, r, "expired", err)
			case errors.Is(err, auth.ErrMissingToken):
				reject(w, r, "missing", err)
			default:
				reject(w, r, "invalid", err)
			}
			return
		}

		principal, err := m.resolver.ResolvePrincipal(ctx, claims.Subject)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}
		if principal == nil {
			reject(w, r, "unknown_principal", auth.ErrInvalidToken)
			return
		}

		log := logger.FromContext(ctx).With(slog.String("user_id", principal.ID.String()))
		ctx = logger.WithLogger(shared.WithPrincipal(ctx, principal), log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>"
// header. Any other header shape yields "".
func ExtractBearerToken(r *http.Request) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	metrics.RecordTokenRejection(reason)
	api.HandleAPIError(w, r, err, "")
}
