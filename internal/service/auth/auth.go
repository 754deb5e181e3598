package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/models"
	"github.com/phamtheduy/portfolio/internal/repository"
	"github.com/phamtheduy/portfolio/internal/service/auth/tokenmanager"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

// Issues and verifies signed tokens
type TokenManager interface {
	IssueAccess(payload tokenmanager.Payload) (models.IssuedToken, error)
	IssueRefresh(payload tokenmanager.Payload) (models.IssuedToken, error)
	Verify(tokenString string) (tokenmanager.Payload, error)
}

type Config struct {
	// Hasher to compare passwords on login
	// Defaults to BcryptHasher
	Hasher PasswordHasher
}

// LoginResult is everything a successful login hands back to the client
type LoginResult struct {
	Pair models.TokenPair
	User models.User
}

type AuthService struct {
	token   TokenManager
	hasher  PasswordHasher
	storage repository.Storage
}

func NewService(cfg Config, tokenManager TokenManager, storage repository.Storage) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if tokenManager == nil {
		return nil, errors.New("token manager must not be nil")
	}
	if storage == nil {
		return nil, errors.New("storage must not be nil")
	}

	return &AuthService{
		token:   tokenManager,
		hasher:  hasher,
		storage: storage,
	}, nil
}

// Login checks credentials and issues a fresh token pair.
// Unknown username and wrong password both fail with
// apperrors.ErrInvalidCredentials so usernames can not be enumerated.
// A disabled account fails with apperrors.ErrAccountDisabled.
func (s *AuthService) Login(ctx context.Context, username string, password string) (LoginResult, error) {
	user, err := s.storage.User().GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		return LoginResult{}, apperrors.ErrInvalidCredentials
	case err != nil:
		return LoginResult{}, fmt.Errorf("user lookup failed. Err: %w", err)
	}

	if !user.IsActive {
		return LoginResult{}, apperrors.ErrAccountDisabled
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return LoginResult{}, apperrors.ErrInvalidCredentials
	}

	payload := tokenmanager.Payload{UserID: user.ID, Username: user.Username}

	access, err := s.token.IssueAccess(payload)
	if err != nil {
		return LoginResult{}, fmt.Errorf("error while issuing access token. Err: %w", err)
	}

	refresh, err := s.token.IssueRefresh(payload)
	if err != nil {
		return LoginResult{}, fmt.Errorf("error while issuing refresh token. Err: %w", err)
	}

	now := time.Now().Truncate(time.Second)

	// The row carries its own expiry next to the claim inside the token:
	// both must hold for the refresh token to be trusted later, which is
	// what makes deleting the row an effective revocation.
	// Both writes land in one transaction, a login either fully happens
	// or leaves no trace.
	err = s.storage.InTx(ctx, func(st repository.Storage) error {
		_, err := st.Refresh().Save(ctx, models.RefreshToken{
			UserID:    user.ID,
			Token:     refresh.Value,
			CreatedAt: now,
			ExpiresAt: refresh.ExpiresAt,
		})
		if err != nil {
			return fmt.Errorf("error while saving refresh token. Err: %w", err)
		}

		if err := st.User().SetLastLogin(ctx, user.ID, now); err != nil {
			return fmt.Errorf("error while recording last login. Err: %w", err)
		}
		return nil
	})
	if err != nil {
		return LoginResult{}, err
	}
	user.LastLogin = &now

	return LoginResult{
		Pair: models.TokenPair{Access: access, Refresh: refresh},
		User: user,
	}, nil
}

// Logout revokes a refresh token by deleting its row.
// Unconditional and idempotent: tokens that were never issued or are
// already revoked log out fine, a client retry must not error.
func (s *AuthService) Logout(ctx context.Context, refresh string) error {
	if err := s.storage.Refresh().Delete(ctx, refresh); err != nil {
		return fmt.Errorf("error while revoking refresh token. Err: %w", err)
	}
	return nil
}

// ValidateRefresh checks everything a refresh style operation needs to
// trust a refresh token: a valid signature, an existing row and an
// unexpired row. Returns the owning user.
func (s *AuthService) ValidateRefresh(ctx context.Context, refresh string) (models.User, error) {
	payload, err := s.token.Verify(refresh)
	if err != nil {
		return models.User{}, err
	}

	row, err := s.storage.Refresh().Get(ctx, refresh)
	if err != nil {
		return models.User{}, err
	}

	if row.ExpiresAt.Before(time.Now()) {
		return models.User{}, fmt.Errorf("token for user %d: %w", payload.UserID, apperrors.ErrRefreshTokenExpired)
	}

	return s.storage.User().GetUserByID(ctx, row.UserID)
}

// AuthenticateRequest extracts the bearer token from the request and
// verifies it. Used by the auth middleware on protected endpoints.
func (s *AuthService) AuthenticateRequest(ctx context.Context, r *http.Request) (tokenmanager.Payload, error) {
	header := r.Header.Get("Authorization")

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return tokenmanager.Payload{}, apperrors.ErrNoToken
	}

	return s.token.Verify(token)
}
