package middleware

import (
	"context"
	"net/http"

	"github.com/phamtheduy/portfolio/internal/handlers/render"
	"github.com/phamtheduy/portfolio/internal/handlers/userctx"
	"github.com/phamtheduy/portfolio/internal/logger"
	"github.com/phamtheduy/portfolio/internal/service/auth/tokenmanager"
)

type authService interface {
	AuthenticateRequest(ctx context.Context, r *http.Request) (tokenmanager.Payload, error)
}

// AuthMiddleware guards protected endpoints. Every rejection looks the
// same to the caller (401 UNAUTHORIZED), the actual reason is only logged.
func AuthMiddleware(as authService, l logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := as.AuthenticateRequest(r.Context(), r)
			if err != nil {
				l.Debug("request rejected", "uri", r.RequestURI, "reason", err.Error())
				render.Error(w, render.CodeUnauthorized, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := userctx.New(r.Context(), payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
