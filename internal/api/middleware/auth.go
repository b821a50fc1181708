package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

const (
	msgMissingToken = "se requiere iniciar sesión"
	msgInvalidToken = "sesión inválida o expirada"
	msgForbidden    = "no tienes permisos para esta acción"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	emailKey  contextKey = "email"
)

// ErrInvalidToken возвращается, если токен не прошел проверку
var ErrInvalidToken = errors.New("middleware: invalid token")

// Claims утверждения access-токена провайдера авторизации
type Claims struct {
	Sub   string `json:"sub"`
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RoleChecker проверка роли пользователя (таблица user_roles)
type RoleChecker interface {
	HasRole(ctx context.Context, userID uuid.UUID, role domain.Role) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ParseToken проверяет подпись HS256 и срок действия токена
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// JWTAuth middleware проверки Bearer-токена
// Кладет в контекст ID пользователя из claim sub
func JWTAuth(secret string, logger Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), key)
			if err != nil {
				logger.Warn("JWTAuth: %s %s - %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			userID, err := uuid.Parse(claims.Sub)
			if err != nil {
				logger.Warn("JWTAuth: %s %s - invalid sub %q", r.Method, r.URL.Path, claims.Sub)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, emailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole middleware проверки роли; ставится после JWTAuth
func RequireRole(checker RoleChecker, role domain.Role, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			allowed, err := checker.HasRole(r.Context(), userID, role)
			if err != nil {
				logger.Error("RequireRole: failed to check role=%s for user=%s: %v", role, userID, err)
				handlers.RespondInternalError(w)
				return
			}
			if !allowed {
				logger.Warn("RequireRole: user=%s lacks role=%s for %s %s", userID, role, r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetEmail извлекает email пользователя из контекста
func GetEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// WithUserID кладет ID пользователя в контекст (для тестов обработчиков)
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
