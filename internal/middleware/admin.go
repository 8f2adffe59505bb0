package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"universe-builder/internal/auth"
	"universe-builder/internal/shared/errors"
	"universe-builder/internal/shared/response"
)

type contextKey string

const AdminContextKey contextKey = "admin"

// RequireAdmin accepts requests carrying a valid admin bearer token. A nil
// issuer means no admin secret is configured and every request is refused.
func RequireAdmin(issuer *auth.TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := logger.With(
				"middleware", "admin",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing admin authorization")

			if issuer == nil {
				response.Error(w, r, logger, errors.Forbidden("admin access is not configured"))
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := issuer.ValidateToken(token)
			if err != nil {
				response.ErrorWithMessage(w, r, logger, errors.Unauthorized(err.Error()), "invalid token")
				return
			}

			if claims.Role != auth.RoleAdmin {
				logger.Warn("Non-admin token used on admin endpoint", "subject", claims.Subject, "role", claims.Role)
				response.Error(w, r, logger, errors.Forbidden("admin access required"))
				return
			}

			logger.Debug("Admin authorization successful", "subject", claims.Subject)
			ctx := context.WithValue(r.Context(), AdminContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetAdminFromContext returns the admin claims set by RequireAdmin.
func GetAdminFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(AdminContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
