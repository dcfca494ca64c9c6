package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/api/middleware"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/mocks"
	"github.com/phrazzld/taskboard-api/internal/platform/metrics"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-at-least-32-chars"

type authFixture struct {
	service *auth.Service
	users   *mocks.MockUserStore
	now     time.Time
	clock   func() time.Time
}

func newAuthFixture(t *testing.T, users ...*domain.User) *authFixture {
	t.Helper()

	f := &authFixture{now: time.Now().Truncate(time.Second)}
	f.clock = func() time.Time { return f.now }

	codec, err := auth.NewTokenCodec(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}, auth.WithClock(func() time.Time { return f.clock() }))
	require.NoError(t, err)

	f.users = mocks.NewMockUserStore(users...)
	f.service, err = auth.NewService(f.users, codec, &mocks.MockPasswordHasher{}, nil, nil)
	require.NoError(t, err)
	return f
}

func (f *authFixture) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	codec, err := auth.NewTokenCodec(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}, auth.WithClock(func() time.Time { return f.now }))
	require.NoError(t, err)
	token, _, err := codec.Issue(context.Background(), auth.ClaimsFor(user))
	require.NoError(t, err)
	return token
}

func newUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Email:          uuid.NewString()[:8] + "@example.com",
		Name:           "Test User",
		HashedPassword: "hashed",
		Role:           role,
	}
}

// principalEcho writes the attached principal's ID and role.
func principalEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := shared.PrincipalFromContext(r.Context())
		require.True(t, ok)
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"id":   principal.ID.String(),
			"role": principal.Role.String(),
		})
	})
}

// tamper flips the first signature character, which carries a full six bits.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAuthenticate(t *testing.T) {
	user := newUser(domain.RoleUser)
	f := newAuthFixture(t, user)
	valid := f.tokenFor(t, user)
	ghost := f.tokenFor(t, newUser(domain.RoleUser))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
		reason     string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "", ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "", ""},
		{"no header", "", http.StatusUnauthorized, api.MsgMissingToken, "missing"},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, api.MsgMissingToken, "missing"},
		{"bare token", valid, http.StatusUnauthorized, api.MsgMissingToken, "missing"},
		{"empty bearer", "Bearer    ", http.StatusUnauthorized, api.MsgMissingToken, "missing"},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized, api.MsgInvalidToken, "invalid"},
		{"tampered", "Bearer " + tamper(valid), http.StatusUnauthorized, api.MsgInvalidToken, "invalid"},
		{"deleted principal", "Bearer " + ghost, http.StatusUnauthorized, api.MsgInvalidToken, "unknown_principal"},
	}

	handler := middleware.NewAuthMiddleware(f.service).Authenticate(principalEcho(t))

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var before float64
			if tc.reason != "" {
				before = testutil.ToFloat64(metrics.TokenRejectionsTotal.WithLabelValues(tc.reason))
			}

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, errorBody(t, rec))
			}
			if tc.reason != "" {
				after := testutil.ToFloat64(metrics.TokenRejectionsTotal.WithLabelValues(tc.reason))
				assert.Equal(t, before+1, after)
			}
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	user := newUser(domain.RoleUser)
	f := newAuthFixture(t, user)
	token := f.tokenFor(t, user)

	f.clock = func() time.Time { return f.now.Add(61 * time.Minute) }

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.NewAuthMiddleware(f.service).Authenticate(principalEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, api.MsgExpiredToken, errorBody(t, rec))
}

func TestAuthenticateStorageFailure(t *testing.T) {
	user := newUser(domain.RoleUser)
	f := newAuthFixture(t, user)
	f.users.FindByIDFn = func(context.Context, uuid.UUID) (*domain.User, error) {
		return nil, errors.New("connection refused")
	}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.tokenFor(t, user))
	rec := httptest.NewRecorder()
	middleware.NewAuthMiddleware(f.service).Authenticate(principalEcho(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Authentication error", errorBody(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAuthenticateAttachesCurrentRole(t *testing.T) {
	user := newUser(domain.RoleAdmin)
	f := newAuthFixture(t, user)
	token := f.tokenFor(t, user)

	// Demoted after the token was issued.
	require.NoError(t, f.users.UpdateRole(context.Background(), user.ID, domain.RoleUser))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.NewAuthMiddleware(f.service).Authenticate(principalEcho(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user", body["role"])
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"BEARER abc", "abc"},
		{"  Bearer   abc  ", "abc"},
		{"Bearer", ""},
		{"Token abc", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", tc.header)
			assert.Equal(t, tc.want, middleware.ExtractBearerToken(req))
		})
	}
}
