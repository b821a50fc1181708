package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func signToken(t *testing.T, sub string, method jwt.SigningMethod, secret string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		Sub:   sub,
		Role:  "authenticated",
		Email: "admin@example.cl",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func userEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(id.String()))
	})
}

func TestJWTAuth(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + signToken(t, userID.String(), jwt.SigningMethodHS256, testSecret, time.Hour), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, userID.String(), jwt.SigningMethodHS256, "other", time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, userID.String(), jwt.SigningMethodHS256, testSecret, -time.Minute), http.StatusUnauthorized},
		{"wrong algorithm", "Bearer " + signToken(t, userID.String(), jwt.SigningMethodHS512, testSecret, time.Hour), http.StatusUnauthorized},
		{"sub is not uuid", "Bearer " + signToken(t, "42", jwt.SigningMethodHS256, testSecret, time.Hour), http.StatusUnauthorized},
	}

	h := JWTAuth(testSecret, nopLogger{})(userEcho())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), rec.Body.String())
			}
		})
	}
}

type fakeRoles struct {
	admins map[uuid.UUID]bool
	err    error
}

func (f *fakeRoles) HasRole(ctx context.Context, userID uuid.UUID, role domain.Role) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return role == domain.RoleAdmin && f.admins[userID], nil
}

func TestRequireRole(t *testing.T) {
	admin := uuid.New()
	visitor := uuid.New()
	roles := &fakeRoles{admins: map[uuid.UUID]bool{admin: true}}

	tests := []struct {
		name       string
		ctx        context.Context
		checker    RoleChecker
		wantStatus int
	}{
		{"admin passes", WithUserID(context.Background(), admin), roles, http.StatusOK},
		{"non admin forbidden", WithUserID(context.Background(), visitor), roles, http.StatusForbidden},
		{"no user", context.Background(), roles, http.StatusUnauthorized},
		{"role lookup fails", WithUserID(context.Background(), admin), &fakeRoles{err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRole(tt.checker, domain.RoleAdmin, nopLogger{})(userEcho())
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil).WithContext(tt.ctx)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
