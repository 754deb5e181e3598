package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/service/auth/tokenmanager"
)

func TestAuthService_AuthenticateRequest(t *testing.T) {
	tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: "test-secret-key"})
	require.NoError(t, err)

	s := &AuthService{token: tokenManager}

	issued, err := tokenManager.IssueAccess(tokenmanager.Payload{UserID: 1, Username: "admin"})
	require.NoError(t, err)

	t.Run("valid bearer token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/projects", nil)
		r.Header.Set("Authorization", "Bearer "+issued.Value)

		payload, err := s.AuthenticateRequest(t.Context(), r)
		require.NoError(t, err)
		require.Equal(t, int64(1), payload.UserID)
		require.Equal(t, "admin", payload.Username)
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/projects", nil)
		r.Header.Set("Authorization", "bearer "+issued.Value)

		_, err := s.AuthenticateRequest(t.Context(), r)
		require.NoError(t, err)
	})

	tests := []struct {
		name        string
		header      string
		expectedErr error
	}{
		{name: "missing header", header: "", expectedErr: apperrors.ErrNoToken},
		{name: "wrong scheme", header: "Basic dXNlcjpwd2Q=", expectedErr: apperrors.ErrNoToken},
		{name: "bearer without token", header: "Bearer ", expectedErr: apperrors.ErrNoToken},
		{name: "tampered token", header: "Bearer abc.def.ghi", expectedErr: apperrors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/projects", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			_, err := s.AuthenticateRequest(t.Context(), r)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
