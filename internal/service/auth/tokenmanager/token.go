package tokenmanager

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/models"
)

const (
	defaultSigningMethod   = "HS256"
	defaultAccessTokenTTL  = 1 * time.Hour
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Payload is the identity carried inside a signed token
type Payload struct {
	UserID   int64
	Username string
}

type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
}

// Token manager with sensible defaults
type Config struct {
	// Secret key to sign token payloads
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set than default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type TokenManager struct {
	// Secret key to sign tokens
	key string

	// JWT MAC (Message Authentication Code) algorithm
	alg jwt.SigningMethod

	// Access and refresh token lifetimes
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	return &TokenManager{
		key:        cfg.SecretKey,
		alg:        jwt.GetSigningMethod(cfg.Alg),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// IssueAccess signs a short lived access token for the payload
func (m *TokenManager) IssueAccess(payload Payload) (models.IssuedToken, error) {
	return m.issue(payload, m.accessTTL)
}

// IssueRefresh signs a long lived refresh token for the payload
func (m *TokenManager) IssueRefresh(payload Payload) (models.IssuedToken, error) {
	return m.issue(payload, m.refreshTTL)
}

func (m *TokenManager) issue(payload Payload, ttl time.Duration) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			UserID:   payload.UserID,
			Username: payload.Username,
		},
	)

	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify parses and validates a signed token and recovers its payload.
// Expired, tampered and malformed tokens all fail with the same
// apperrors.ErrTokenInvalid so callers can not tell the cases apart.
func (m *TokenManager) Verify(tokenString string) (Payload, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", apperrors.ErrTokenInvalid, err)
	}

	return Payload{UserID: claims.UserID, Username: claims.Username}, nil
}

// Decode reads the payload without checking the signature or expiry.
// Never use the result for authorization decisions.
func (m *TokenManager) Decode(tokenString string) (Payload, bool) {
	claims := &Claims{}

	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return Payload{}, false
	}

	return Payload{UserID: claims.UserID, Username: claims.Username}, true
}
