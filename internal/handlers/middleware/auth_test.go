package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/handlers/userctx"
	"github.com/phamtheduy/portfolio/internal/logger"
	"github.com/phamtheduy/portfolio/internal/service/auth/tokenmanager"
)

// Allow to use a function as auth service
type authFunc func(ctx context.Context, r *http.Request) (tokenmanager.Payload, error)

func (f authFunc) AuthenticateRequest(ctx context.Context, r *http.Request) (tokenmanager.Payload, error) {
	return f(ctx, r)
}

func TestAuthMiddleware(t *testing.T) {
	// Simple handler that writes the username from the context payload
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Must always be true cause middleware rejects the request otherwise
		payload, ok := userctx.FromContext(r.Context())
		require.True(t, ok)

		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(payload.Username))
		require.NoError(t, err, "should write username to response")
	})

	t.Run("auth ok", func(t *testing.T) {
		// Middleware that always return ok
		middleware := AuthMiddleware(authFunc(func(ctx context.Context, r *http.Request) (tokenmanager.Payload, error) {
			return tokenmanager.Payload{UserID: 1, Username: "test-user"}, nil
		}), logger.NewNoOpLogger())

		srv := httptest.NewServer(middleware(handler))
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/test")
		require.NoError(t, err, "should make request to test server")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err, "should read response body")
		defer resp.Body.Close() // nolint:errcheck

		require.Equalf(t, http.StatusOK, resp.StatusCode, "should return status OK. Resp: %s", string(body))
		require.Equal(t, "test-user", string(body), "should return username in response")
	})

	rejections := []struct {
		name string
		err  error
	}{
		{name: "no token", err: apperrors.ErrNoToken},
		{name: "invalid token", err: apperrors.ErrTokenInvalid},
	}

	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			// Both rejection reasons must be indistinguishable to the caller
			middleware := AuthMiddleware(authFunc(func(ctx context.Context, r *http.Request) (tokenmanager.Payload, error) {
				return tokenmanager.Payload{}, tt.err
			}), logger.NewNoOpLogger())

			srv := httptest.NewServer(middleware(handler))
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/test")
			require.NoError(t, err, "should make request to test server")
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "should read response body")
			defer resp.Body.Close() // nolint:errcheck

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "should return status Unauthorized. Resp: %s", string(body))
			require.JSONEq(t,
				`{
					"success": false,
					"error": {
						"code": "UNAUTHORIZED",
						"message": "Invalid or expired token"
					}
				}`,
				string(body),
			)
		})
	}
}
