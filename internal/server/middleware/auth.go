package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/barkeeper/internal/server/handlers"
	"github.com/iudanet/barkeeper/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT токена
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				handlers.SendError(logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "missing token")
				return
			}

			tokenString, ok := bearerToken(r)
			if !ok {
				logger.Warn("Invalid Authorization header format", "path", r.URL.Path)
				handlers.SendError(logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid token format")
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				handlers.SendError(logger, w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid token")
				return
			}

			logger.Debug("User authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(r.Context(), claims.UserID, claims.Email)))
		})
	}
}

// bearerToken извлекает токен из заголовка Authorization
func bearerToken(r *http.Request) (string, bool) {
	// Ожидаем формат: "Bearer <token>"
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
