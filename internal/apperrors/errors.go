package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")

	ErrNoToken              = errors.New("no token provided")
	ErrTokenInvalid         = errors.New("token is invalid or expired")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token is expired")

	ErrProjectNotFound     = errors.New("project not found")
	ErrAchievementNotFound = errors.New("achievement not found")
)
